// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roadmap

// soloZeroOneMonth is the canonical bootstrap plan: one founder, no budget,
// four weeks from interviews to a paid tier.
func soloZeroOneMonth() Plan {
	return Plan{
		ID:          "solo_zero_1month",
		CaseKey:     "solo_zero_1month",
		Title:       "Solo Bootstrapping Roadmap",
		Description: "A solo plan to build and validate an MVP with no budget in 1 month.",
		TotalCost:   0,
		Weeks: []Week{
			{
				Week:          1,
				Title:         "Idea validation and market research",
				Goal:          "Interview 10 target customers, confirm demand, map competitors",
				EstimatedCost: 0,
				Days: []Day{
					{
						Day: "Monday",
						Tasks: []Task{
							{
								Title:       "Define five traits of the target customer",
								Duration:    "30m",
								Description: `e.g. "job-seeking developer, 25-35, bootcamp graduate"`,
								Tools:       []Tool{{Name: "Notion", URL: "https://www.notion.so/"}},
							},
							{
								Title:       "Write five interview questions",
								Duration:    "30m",
								Description: "Biggest pain point, current tools, willingness to pay",
							},
							{
								Title:       "Schedule interviews",
								Duration:    "1h",
								Description: "Recruit on LinkedIn, Twitter and developer communities",
								Tools: []Tool{
									{Name: "Discord", URL: "https://discord.com/"},
									{Name: "Daangn", URL: "https://www.daangn.com/"},
								},
							},
						},
					},
					{
						Day: "Tuesday-Thursday",
						Tasks: []Task{
							{
								Title:       "Interview five target customers",
								Duration:    "1.5h",
								Description: "15 minutes each over Google Meet",
								Tools: []Tool{
									{Name: "Google Meet", URL: "https://meet.google.com/"},
									{Name: "Google Docs", URL: "https://docs.google.com/"},
								},
							},
							{
								Title:       "Summarise key insights",
								Duration:    "30m",
								Description: "Extract the three most common problems",
							},
						},
					},
					{
						Day: "Friday",
						Tasks: []Task{
							{
								Title:       "Analyse five competitors",
								Duration:    "2h",
								Description: "SWOT analysis and comparison table",
								Tools:       []Tool{{Name: "Google Sheets", URL: "https://sheets.google.com/"}},
							},
							{
								Title:       "Build a landing page",
								Duration:    "2h",
								Description: "No-code, ship it the same day",
								Tools: []Tool{
									{Name: "Notion", URL: "https://www.notion.so/"},
									{Name: "Carrd", URL: "https://carrd.co/"},
								},
							},
							{
								Title:       "Post a test announcement",
								Duration:    "30m",
								Description: "Share on Twitter and developer communities",
							},
						},
					},
				},
				Summary: []string{
					"Interviews: 5 people, 3 shared pain points",
					"Competitor analysis: 5 SWOTs complete",
					"Landing page: live",
					"Early interest: 50 sign-ups (target)",
				},
				Tips: []string{
					`Ask "why?" at least three times in every interview`,
					"Focus competitor research on what you can do better",
				},
			},
			{
				Week:          2,
				Title:         "MVP development (three core features only)",
				Goal:          "Ship basic versions of idea validation, team matching and the funding roadmap",
				EstimatedCost: 0,
				Days: []Day{
					{
						Day: "Monday-Tuesday",
						Tasks: []Task{
							{
								Title:       "Build the AI idea coach",
								Duration:    "6h",
								Description: "LLM API integration and chat UI",
								Tools: []Tool{
									{Name: "OpenAI API", URL: "https://platform.openai.com/"},
									{Name: "react-markdown", URL: "https://github.com/remarkjs/react-markdown"},
								},
							},
						},
					},
					{
						Day: "Wednesday-Thursday",
						Tasks: []Task{
							{
								Title:       "Build team matching",
								Duration:    "6h",
								Description: "Profile database and swipe-card UI",
								Tools: []Tool{
									{Name: "Supabase", URL: "https://supabase.com/"},
									{Name: "react-tinder-card", URL: "https://github.com/3DJakob/react-tinder-card"},
								},
							},
						},
					},
					{
						Day: "Friday",
						Tasks: []Task{
							{
								Title:       "Build the funding roadmap",
								Duration:    "5h",
								Description: "Questionnaire form and roadmap view",
							},
						},
					},
				},
				Summary: []string{
					"APIs: validation, matching and roadmap done",
					"UI: all three tabs in a basic state",
					"Local testing: core flows work",
				},
				Tips: []string{
					"It does not have to be perfect, only the core has to work",
					"Commit often",
				},
			},
			{
				Week:          3,
				Title:         "Testing and launch preparation",
				Goal:          "Recruit 20 beta testers, collect feedback, improve",
				EstimatedCost: 0,
				Days: []Day{
					{
						Day: "Monday",
						Tasks: []Task{
							{
								Title:       "Deploy to Vercel",
								Duration:    "1h",
								Description: "Connect GitHub for automatic deploys",
								Tools:       []Tool{{Name: "Vercel", URL: "https://vercel.com/"}},
							},
						},
					},
					{
						Day: "Tuesday-Thursday",
						Tasks: []Task{
							{
								Title:       "Recruit and run beta testers",
								Duration:    "8h",
								Description: "Recruit with Google Forms, collect feedback live",
								Tools:       []Tool{{Name: "Google Forms", URL: "https://forms.google.com/"}},
							},
							{
								Title:       "Fix bugs",
								Duration:    "4h",
								Description: "Work through reported bugs by priority",
							},
						},
					},
					{
						Day: "Friday",
						Tasks: []Task{
							{
								Title:       "Prepare the ProductHunt launch",
								Duration:    "2h",
								Description: "Product images, copy and a short video",
								Tools: []Tool{
									{Name: "Canva", URL: "https://www.canva.com/"},
									{Name: "CapCut", URL: "https://www.capcut.com/"},
								},
							},
							{
								Title:       "Write a build log post",
								Duration:    "2h",
								Description: `"How I built an MVP in five days"`,
								Tools:       []Tool{{Name: "Velog", URL: "https://velog.io/"}},
							},
						},
					},
				},
				Summary: []string{
					"Deployed",
					"Beta testers: 20 recruited",
					"Three major improvements shipped",
					"ProductHunt launch ready",
				},
			},
			{
				Week:          4,
				Title:         "Public launch and growth",
				Goal:          "Launch, reach the first 100 users, start monetising",
				EstimatedCost: 0,
				Days: []Day{
					{
						Day: "Monday",
						Tasks: []Task{
							{
								Title:       "Post on ProductHunt",
								Duration:    "1h",
								Description: "Post at 10am Pacific",
								Tools:       []Tool{{Name: "ProductHunt", URL: "https://www.producthunt.com/"}},
							},
							{
								Title:       "Announce on social media",
								Duration:    "1h",
								Description: "Twitter, LinkedIn, Instagram",
							},
						},
					},
					{
						Day: "Tuesday-Thursday",
						Tasks: []Task{
							{
								Title:       "Social media marketing",
								Duration:    "2h daily",
								Description: "Two or three tweets a day, one LinkedIn insight",
							},
							{
								Title:       "Community work",
								Duration:    "1h daily",
								Description: "Answer questions and mentor in developer groups",
							},
							{
								Title:       "Early user care",
								Duration:    "2h daily",
								Description: "Reply to feedback within 24 hours, fix bugs immediately",
							},
						},
					},
					{
						Day: "Friday",
						Tasks: []Task{
							{
								Title:       "Launch a premium tier",
								Duration:    "2h",
								Description: "Free vs premium (4,900 KRW per month)",
							},
							{
								Title:       "Integrate payments",
								Duration:    "3h",
								Description: "Stripe or Toss Payments",
								Tools: []Tool{
									{Name: "Stripe", URL: "https://stripe.com/"},
									{Name: "Toss Payments", URL: "https://developers.tosspayments.com/"},
								},
							},
						},
					},
				},
				Summary: []string{
					"Public launch complete",
					"Target: 100 sign-ups, 5 premium users",
					"Expected monthly revenue: 25,000 KRW",
				},
				Tips: []string{
					"Word of mouth beats ads: find the first 100 users in communities",
					"Speed beats polish: launch at 80%",
					"Check analytics every day",
				},
			},
		},
	}
}
