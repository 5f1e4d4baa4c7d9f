// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persona

// builtinProfiles returns the five built-in personas used whenever the
// configuration file is missing or unparsable. The set mirrors the
// shipped persona_config.yaml so a bare checkout still serves searches.
func builtinProfiles() []Profile {
	return []Profile{
		{
			Name:        "devops_engineer",
			DisplayName: "DevOps Engineer",
			Description: "Infrastructure and deployment focused AI search",
			FocusAreas: []string{
				"MLOps platform updates",
				"AI infrastructure scaling",
				"GPU cluster management",
				"Container orchestration for AI",
				"AI model deployment tools",
				"Cost optimization strategies",
				"Monitoring and observability",
				"CI/CD for AI models",
				"Infrastructure as Code for AI",
			},
			SearchPatterns: []string{
				"latest MLOps platforms",
				"GPU infrastructure updates",
				"AI deployment tools",
				"container AI orchestration",
				"AI model serving platforms",
				"GPU cost optimization",
			},
			TopicCategories: map[string][]string{
				"infrastructure":    {"GPU clusters", "TPU management", "distributed training"},
				"platforms":         {"MLOps platforms", "model registries", "experiment tracking"},
				"cost_optimization": {"spot instances", "GPU sharing", "resource scheduling"},
			},
			SearchModifiers: map[string][]string{
				"urgency":        {"breaking", "latest", "urgent"},
				"implementation": {"how to", "tutorial", "guide"},
			},
			OutputFormat: OutputFormat{Structure: "infrastructure_focused", Style: "technical_detailed"},
			Instructions: Instructions{
				PrimaryRole:    "AI search assistant for DevOps Engineers",
				CoreObjectives: []string{"Infrastructure insights", "Cost optimization", "Scalability"},
				TechnicalDepth: "advanced",
			},
		},
		{
			Name:        "software_engineer",
			DisplayName: "Software Engineer",
			Description: "Development frameworks and APIs focused AI search",
			FocusAreas: []string{
				"AI development frameworks",
				"LLM integration APIs",
				"AI coding assistants",
				"Generative AI SDKs",
				"AI testing frameworks",
				"Prompt engineering tools",
				"AI debugging solutions",
				"Vector databases",
				"Embedding models",
			},
			SearchPatterns: []string{
				"new AI development frameworks",
				"LLM API updates",
				"AI coding tools",
				"generative AI SDKs",
				"AI testing libraries",
			},
			TopicCategories: map[string][]string{
				"frameworks":        {"LangChain", "LlamaIndex", "Haystack"},
				"apis_and_sdks":     {"OpenAI API", "Anthropic API", "Google Gemini API"},
				"development_tools": {"AI coding assistants", "code completion", "AI debuggers"},
			},
			SearchModifiers: map[string][]string{
				"implementation": {"tutorial", "example", "documentation"},
				"comparison":     {"vs", "comparison", "benchmark"},
			},
			OutputFormat: OutputFormat{Structure: "development_focused", Style: "practical_technical"},
			Instructions: Instructions{
				PrimaryRole:    "AI search assistant for Software Engineers",
				CoreObjectives: []string{"Development guidance", "API updates", "Best practices"},
				TechnicalDepth: "implementation_focused",
			},
		},
		{
			Name:        "ai_engineer",
			DisplayName: "AI Engineer",
			Description: "Research and ML engineering focused AI search",
			FocusAreas: []string{
				"LLM architectures",
				"Model training techniques",
				"Fine-tuning methodologies",
				"AI research papers",
				"Neural network innovations",
				"Model optimization",
				"Evaluation frameworks",
				"Transformer improvements",
				"Multi-modal models",
			},
			SearchPatterns: []string{
				"latest LLM research papers",
				"new neural architectures",
				"model training techniques",
				"fine-tuning methods",
				"AI model optimization",
			},
			TopicCategories: map[string][]string{
				"architectures":       {"transformer variants", "attention mechanisms", "encoder-decoder"},
				"training_techniques": {"supervised learning", "self-supervised", "reinforcement learning"},
				"optimization":        {"gradient descent variants", "regularization techniques", "pruning"},
			},
			SearchModifiers: map[string][]string{
				"research":  {"paper", "study", "research", "experiment"},
				"technical": {"architecture", "method", "algorithm"},
			},
			OutputFormat: OutputFormat{Structure: "research_focused", Style: "academic_technical"},
			Instructions: Instructions{
				PrimaryRole:    "AI search assistant for AI Engineers and Researchers",
				CoreObjectives: []string{"Research insights", "Technical methodologies", "Innovations"},
				TechnicalDepth: "research_level",
			},
		},
		{
			Name:        "product_owner",
			DisplayName: "Product Owner",
			Description: "Product features and user experience focused AI search",
			FocusAreas: []string{
				"AI product features",
				"User experience improvements",
				"Market adoption trends",
				"Competitive analysis",
				"Feature development costs",
				"Success metrics",
				"User feedback patterns",
				"AI accessibility",
				"Product roadmap planning",
			},
			SearchPatterns: []string{
				"AI product features trends",
				"user experience AI",
				"AI adoption rates",
				"competitive AI features",
				"AI product success metrics",
			},
			TopicCategories: map[string][]string{
				"user_experience":     {"UI/UX design", "accessibility", "usability testing"},
				"feature_development": {"feature prioritization", "MVP planning", "user stories"},
				"market_analysis":     {"market research", "competitor analysis", "user surveys"},
			},
			SearchModifiers: map[string][]string{
				"user_focused":   {"user", "customer", "experience", "feedback"},
				"market_focused": {"market", "competitive", "trends", "adoption"},
			},
			OutputFormat: OutputFormat{Structure: "product_focused", Style: "strategic_user_centric"},
			Instructions: Instructions{
				PrimaryRole:    "AI search assistant for Product Owners",
				CoreObjectives: []string{"User insights", "Market trends", "Feature opportunities"},
				TechnicalDepth: "product_focused",
			},
		},
		{
			Name:        "product_manager",
			DisplayName: "Product Manager",
			Description: "Business strategy and market opportunity focused AI search",
			FocusAreas: []string{
				"AI business strategy",
				"Market opportunities",
				"Business model innovations",
				"Monetization strategies",
				"Enterprise adoption",
				"ROI measurements",
				"Strategic partnerships",
				"Investment trends",
				"Competitive positioning",
			},
			SearchPatterns: []string{
				"AI business strategy",
				"AI market opportunities",
				"AI monetization models",
				"enterprise AI adoption",
				"AI partnership deals",
			},
			TopicCategories: map[string][]string{
				"business_strategy": {"strategic planning", "market positioning", "competitive advantage"},
				"financial_metrics": {"revenue models", "pricing strategies", "ROI analysis"},
				"partnerships":      {"strategic alliances", "joint ventures", "technology partnerships"},
			},
			SearchModifiers: map[string][]string{
				"strategic": {"strategy", "strategic", "planning", "vision"},
				"financial": {"revenue", "profit", "ROI", "investment"},
			},
			OutputFormat: OutputFormat{Structure: "business_focused", Style: "executive_strategic"},
			Instructions: Instructions{
				PrimaryRole:    "AI search assistant for Product Managers",
				CoreObjectives: []string{"Strategic insights", "Business opportunities", "Market intelligence"},
				TechnicalDepth: "business_strategic",
			},
		},
	}
}
