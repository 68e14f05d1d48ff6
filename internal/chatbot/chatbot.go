// Package chatbot answers candidate help questions with a keyword-matched
// canned response. It is deliberately offline: help must keep working when
// every AI provider is down.
package chatbot

import "strings"

type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{
		keywords: []string{"start", "begin", "how do i"},
		reply:    "To start an interview, upload your resume or pick a job role, then press Start Interview. Questions arrive one at a time.",
	},
	{
		keywords: []string{"score", "scoring", "marks", "grade"},
		reply:    "Each answer is scored from 0 to 10 on relevance, depth and clarity. If your camera and microphone are on, delivery is blended in as well.",
	},
	{
		keywords: []string{"camera", "video", "webcam"},
		reply:    "The camera is optional. When enabled, it feeds confidence and posture signals into your delivery score. You can interview without it.",
	},
	{
		keywords: []string{"microphone", "mic", "audio", "voice"},
		reply:    "You can answer by voice. Recordings are transcribed automatically and scored like typed answers.",
	},
	{
		keywords: []string{"resume", "cv", "upload"},
		reply:    "Upload a PDF or DOCX resume on the home page. Detected skills shape the questions you get.",
	},
	{
		keywords: []string{"result", "report", "feedback"},
		reply:    "After the last question you get a full report: per-question scores, delivery analysis and overall feedback.",
	},
	{
		keywords: []string{"question", "skip", "next"},
		reply:    "Questions come one at a time and adapt to your previous answer. There is no skipping; give your best attempt and move on.",
	},
	{
		keywords: []string{"time", "long", "duration", "minutes"},
		reply:    "A session runs 10 to 15 questions. Most candidates finish in 20 to 30 minutes.",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hi! Ask me anything about how the interview works: starting, scoring, camera, or results.",
	},
}

const fallbackReply = "I can help with starting an interview, scoring, camera and microphone setup, resume upload, and reading your results. What would you like to know?"

// Reply picks the first rule whose keyword occurs in the message.
func Reply(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return fallbackReply
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(msg, kw) {
				return r.reply
			}
		}
	}
	return fallbackReply
}
