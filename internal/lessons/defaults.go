package lessons

var defaultDrafts = []Draft{
	{
		Title:      "Basic Home Row",
		Content:    "asdf jkl; asdf jkl; sad sad lad lad fad fad dad dad",
		Difficulty: "beginner",
		Category:   "basics",
	},
	{
		Title:      "Quick Brown Fox",
		Content:    "The quick brown fox jumps over the lazy dog. This sentence contains every letter of the alphabet.",
		Difficulty: "intermediate",
		Category:   "phrases",
	},
	{
		Title:      "Programming Practice",
		Content:    "function calculateSum(a, b) { return a + b; } const result = calculateSum(10, 20); console.log(result);",
		Difficulty: "advanced",
		Category:   "programming",
	},
	{
		Title:      "Common Words",
		Content:    "the and for are but not you all can had her was one our out day get has him his how its may new now old see two who boy did man run way too any been before find where should would",
		Difficulty: "beginner",
		Category:   "words",
	},
}
