package questionbank

import "github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"

// defaultBank mirrors data/questions/interview_questions.json so the service
// still has a floor when the file is absent.
func defaultBank() map[string][]models.Question {
	mk := func(text, category, difficulty string) models.Question {
		return models.Question{Text: text, Category: category, Difficulty: difficulty, Provenance: models.ProvenanceBank}
	}

	return map[string][]models.Question{
		"software_engineer": {
			mk("Tell me about yourself and your most relevant experience for this role.", models.CategoryBehavioral, "easy"),
			mk("Describe a challenging bug you tracked down. How did you approach it?", models.CategoryTechnical, "medium"),
			mk("How do you decide between readability and performance when writing code?", models.CategoryTechnical, "medium"),
			mk("Walk me through the design of a system you are proud of.", models.CategoryTechnical, "hard"),
			mk("Tell me about a time you disagreed with a teammate about a technical decision.", models.CategoryBehavioral, "medium"),
			mk("How do you keep your skills current?", models.CategoryBehavioral, "easy"),
			mk("Explain the difference between concurrency and parallelism with an example.", models.CategoryTechnical, "medium"),
			mk("What would you do if a release you shipped started failing in production?", models.CategorySituational, "hard"),
			mk("How do you approach writing tests for a new feature?", models.CategoryTechnical, "medium"),
			mk("Describe a project where requirements changed late. How did you handle it?", models.CategorySituational, "medium"),
		},
		"data_scientist": {
			mk("Tell me about a dataset you found particularly messy. How did you clean it?", models.CategoryTechnical, "medium"),
			mk("How do you decide between model accuracy and interpretability?", models.CategoryTechnical, "medium"),
			mk("Explain overfitting to a non-technical stakeholder.", models.CategoryBehavioral, "easy"),
			mk("Describe an analysis whose conclusion surprised you.", models.CategoryBehavioral, "medium"),
			mk("How would you design an A/B test for a new recommendation feature?", models.CategorySituational, "hard"),
			mk("What metrics would you track for a churn-prediction model in production?", models.CategoryTechnical, "hard"),
		},
		"product_manager": {
			mk("Tell me about a product decision you made with incomplete data.", models.CategorySituational, "medium"),
			mk("How do you prioritize a backlog when every stakeholder says their item is urgent?", models.CategorySituational, "medium"),
			mk("Describe a feature you shipped that failed. What did you learn?", models.CategoryBehavioral, "medium"),
			mk("How do you measure whether a launch was successful?", models.CategoryTechnical, "medium"),
			mk("Walk me through how you would write a spec for a feature from a single customer complaint.", models.CategorySituational, "hard"),
		},
	}
}
