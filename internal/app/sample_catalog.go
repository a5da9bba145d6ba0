package app

import "bible-quiz-service/internal/domain"

// SampleCatalog returns the built-in seed questions. IDs are assigned when
// the catalog is appended to a store.
func SampleCatalog() []domain.Question {
	return []domain.Question{
		{
			Text:          "In how many days did God create the world?",
			Options:       []string{"5 days", "6 days", "7 days", "8 days"},
			CorrectAnswer: 1,
			Category:      "Old Testament",
			Difficulty:    "Easy",
			Verse:         "Genesis 1:31",
			Explanation:   "God created the world in 6 days and rested on the 7th.",
		},
		{
			Text:          "Where was Jesus born?",
			Options:       []string{"Nazareth", "Bethlehem", "Jerusalem", "Capernaum"},
			CorrectAnswer: 1,
			Category:      "New Testament",
			Difficulty:    "Easy",
			Verse:         "Matthew 2:1",
			Explanation:   "Jesus was born in Bethlehem, the city of David.",
		},
		{
			Text:          "How many commandments did Moses receive?",
			Options:       []string{"8", "10", "12", "15"},
			CorrectAnswer: 1,
			Category:      "Old Testament",
			Difficulty:    "Easy",
			Verse:         "Exodus 20",
			Explanation:   "Moses received 10 commandments from God on Mount Sinai.",
		},
		{
			Text:          "How many disciples did Jesus choose?",
			Options:       []string{"10", "11", "12", "13"},
			CorrectAnswer: 2,
			Category:      "New Testament",
			Difficulty:    "Easy",
			Verse:         "Matthew 10:1-4",
			Explanation:   "Jesus chose 12 disciples.",
		},
		{
			Text:          "Whom did David slay?",
			Options:       []string{"Goliath", "Saul", "Absalom", "Jonathan"},
			CorrectAnswer: 0,
			Category:      "Old Testament",
			Difficulty:    "Medium",
			Verse:         "1 Samuel 17:50",
			Explanation:   "David killed the giant Goliath with a stone.",
		},
		{
			Text:          "To whom did Jesus first appear after the resurrection?",
			Options:       []string{"Peter", "John", "Mary Magdalene", "Thomas"},
			CorrectAnswer: 2,
			Category:      "New Testament",
			Difficulty:    "Medium",
			Verse:         "John 20:14-18",
			Explanation:   "After the resurrection Jesus appeared first to Mary Magdalene.",
		},
		{
			Text:          "For how many days did the flood waters prevail on the earth?",
			Options:       []string{"40 days", "100 days", "150 days", "365 days"},
			CorrectAnswer: 2,
			Category:      "Old Testament",
			Difficulty:    "Hard",
			Verse:         "Genesis 7:24",
			Explanation:   "The waters prevailed on the earth for 150 days.",
		},
		{
			Text:          "How many epistles did Paul write?",
			Options:       []string{"12", "13", "14", "15"},
			CorrectAnswer: 1,
			Category:      "New Testament",
			Difficulty:    "Hard",
			Verse:         "New Testament",
			Explanation:   "Paul wrote 13 epistles (Hebrews is disputed).",
		},
		{
			Text:          "How many books are in the Bible?",
			Options:       []string{"39", "27", "66", "73"},
			CorrectAnswer: 2,
			Category:      "General",
			Difficulty:    "Easy",
			Explanation:   "The Protestant Bible has 66 books: 39 Old Testament and 27 New Testament.",
		},
		{
			Text:          "Which is the longest psalm?",
			Options:       []string{"Psalm 23", "Psalm 90", "Psalm 117", "Psalm 119"},
			CorrectAnswer: 3,
			Category:      "General",
			Difficulty:    "Medium",
			Verse:         "Psalm 119",
			Explanation:   "Psalm 119 has 176 verses, the longest chapter in the Bible.",
		},
	}
}
