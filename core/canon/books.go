package canon

// books is the 66-book Protestant canon in canonical order with KJV verse
// counts per chapter.
var books = []Book{
	// Old Testament
	{ID: "Gen", Name: "Genesis", USFM: "GEN", Aliases: []string{"gn"}, Chapters: []int{31, 25, 24, 26, 32, 22, 24, 22, 29, 32, 32, 20, 18, 24, 21, 16, 27, 33, 38, 18, 34, 24, 20, 67, 34, 35, 46, 22, 35, 43, 55, 32, 20, 31, 29, 43, 36, 30, 23, 23, 57, 38, 34, 34, 28, 34, 31, 22, 33, 26}},
	{ID: "Exod", Name: "Exodus", USFM: "EXO", Aliases: []string{"exo"}, Chapters: []int{22, 25, 22, 31, 23, 30, 25, 32, 35, 29, 10, 51, 22, 31, 27, 36, 16, 27, 25, 26, 36, 31, 33, 18, 40, 37, 21, 43, 46, 38, 18, 35, 23, 35, 35, 38, 29, 31, 43, 38}},
	{ID: "Lev", Name: "Leviticus", USFM: "LEV", Aliases: []string{"lv"}, Chapters: []int{17, 16, 17, 35, 19, 30, 38, 36, 24, 20, 47, 8, 59, 57, 33, 34, 16, 30, 37, 27, 24, 33, 44, 23, 55, 46, 34}},
	{ID: "Num", Name: "Numbers", USFM: "NUM", Aliases: []string{"nm", "nb"}, Chapters: []int{54, 34, 51, 49, 31, 27, 89, 26, 23, 36, 35, 16, 33, 45, 41, 50, 13, 32, 22, 29, 35, 41, 30, 25, 18, 65, 23, 31, 40, 16, 54, 42, 56, 29, 34, 13}},
	{ID: "Deut", Name: "Deuteronomy", USFM: "DEU", Aliases: []string{"dt"}, Chapters: []int{46, 37, 29, 49, 33, 25, 26, 20, 29, 22, 32, 32, 18, 29, 23, 22, 20, 22, 21, 20, 23, 30, 25, 22, 19, 19, 26, 68, 29, 20, 30, 52, 29, 12}},
	{ID: "Josh", Name: "Joshua", USFM: "JOS", Aliases: []string{"jsh"}, Chapters: []int{18, 24, 17, 24, 15, 27, 26, 35, 27, 43, 23, 24, 33, 15, 63, 10, 18, 28, 51, 9, 45, 34, 16, 33}},
	{ID: "Judg", Name: "Judges", USFM: "JDG", Aliases: []string{"jgs"}, Chapters: []int{36, 23, 31, 24, 31, 40, 25, 35, 57, 18, 40, 15, 25, 20, 20, 31, 13, 31, 30, 48, 25}},
	{ID: "Ruth", Name: "Ruth", USFM: "RUT", Aliases: []string{"rth"}, Chapters: []int{22, 23, 18, 22}},
	{ID: "1Sam", Name: "1 Samuel", USFM: "1SA", Aliases: []string{"1sm"}, Chapters: []int{28, 36, 21, 22, 12, 21, 17, 22, 27, 27, 15, 25, 23, 52, 35, 23, 58, 30, 24, 42, 15, 23, 29, 22, 44, 25, 12, 25, 11, 31, 13}},
	{ID: "2Sam", Name: "2 Samuel", USFM: "2SA", Aliases: []string{"2sm"}, Chapters: []int{27, 32, 39, 12, 25, 23, 29, 18, 13, 19, 27, 31, 39, 33, 37, 23, 29, 33, 43, 26, 22, 51, 39, 25}},
	{ID: "1Kgs", Name: "1 Kings", USFM: "1KI", Aliases: []string{"1kin"}, Chapters: []int{53, 46, 28, 34, 18, 38, 51, 66, 28, 29, 43, 33, 34, 31, 34, 34, 24, 46, 21, 43, 29, 53}},
	{ID: "2Kgs", Name: "2 Kings", USFM: "2KI", Aliases: []string{"2kin"}, Chapters: []int{18, 25, 27, 44, 27, 33, 20, 29, 37, 36, 21, 21, 25, 29, 38, 20, 41, 37, 37, 21, 26, 20, 37, 20, 30}},
	{ID: "1Chr", Name: "1 Chronicles", USFM: "1CH", Aliases: []string{"1chron"}, Chapters: []int{54, 55, 24, 43, 26, 81, 40, 40, 44, 14, 47, 40, 14, 17, 29, 43, 27, 17, 19, 8, 30, 19, 32, 31, 31, 32, 34, 21, 30}},
	{ID: "2Chr", Name: "2 Chronicles", USFM: "2CH", Aliases: []string{"2chron"}, Chapters: []int{17, 18, 17, 22, 14, 42, 22, 18, 31, 19, 23, 16, 22, 15, 19, 14, 19, 34, 11, 37, 20, 12, 21, 27, 28, 23, 9, 27, 36, 27, 21, 33, 25, 33, 27, 23}},
	{ID: "Ezra", Name: "Ezra", USFM: "EZR", Chapters: []int{11, 70, 13, 24, 17, 22, 28, 36, 15, 44}},
	{ID: "Neh", Name: "Nehemiah", USFM: "NEH", Chapters: []int{11, 20, 32, 23, 19, 19, 73, 18, 38, 39, 36, 47, 31}},
	{ID: "Esth", Name: "Esther", USFM: "EST", Chapters: []int{22, 23, 15, 17, 14, 14, 10, 17, 32, 3}},
	{ID: "Job", Name: "Job", USFM: "JOB", Aliases: []string{"jb"}, Chapters: []int{22, 13, 26, 21, 27, 30, 21, 22, 35, 22, 20, 25, 28, 22, 35, 22, 16, 21, 29, 29, 34, 30, 17, 25, 6, 14, 23, 28, 25, 31, 40, 22, 33, 37, 16, 33, 24, 41, 30, 24, 34, 17}},
	{ID: "Ps", Name: "Psalms", USFM: "PSA", Aliases: []string{"psalm", "pss", "psm", "pslm"}, Chapters: []int{6, 12, 8, 8, 12, 10, 17, 9, 20, 18, 7, 8, 6, 7, 5, 11, 15, 50, 14, 9, 13, 31, 6, 10, 22, 12, 14, 9, 11, 12, 24, 11, 22, 22, 28, 12, 40, 22, 13, 17, 13, 11, 5, 26, 17, 11, 9, 14, 20, 23, 19, 9, 6, 7, 23, 13, 11, 11, 17, 12, 8, 12, 11, 10, 13, 20, 7, 35, 36, 5, 24, 20, 28, 23, 10, 12, 20, 72, 13, 19, 16, 8, 18, 12, 13, 17, 7, 18, 52, 17, 16, 15, 5, 23, 11, 13, 12, 9, 9, 5, 8, 28, 22, 35, 45, 48, 43, 13, 31, 7, 10, 10, 9, 8, 18, 19, 2, 29, 176, 7, 8, 9, 4, 8, 5, 6, 5, 6, 8, 8, 3, 18, 3, 3, 21, 26, 9, 8, 24, 13, 10, 7, 12, 15, 21, 10, 20, 14, 9, 6}},
	{ID: "Prov", Name: "Proverbs", USFM: "PRO", Aliases: []string{"prv"}, Chapters: []int{33, 22, 35, 27, 23, 35, 27, 36, 18, 32, 31, 28, 25, 35, 33, 33, 28, 24, 29, 30, 31, 29, 35, 34, 28, 28, 27, 28, 27, 33, 31}},
	{ID: "Eccl", Name: "Ecclesiastes", USFM: "ECC", Aliases: []string{"eccles", "qoh", "qoheleth"}, Chapters: []int{18, 26, 22, 16, 20, 12, 29, 17, 18, 20, 10, 14}},
	{ID: "Song", Name: "Song of Solomon", USFM: "SNG", Aliases: []string{"song of songs", "sos", "canticles", "cant"}, Chapters: []int{17, 17, 11, 16, 16, 13, 13, 14}},
	{ID: "Isa", Name: "Isaiah", USFM: "ISA", Chapters: []int{31, 22, 26, 6, 30, 13, 25, 22, 21, 34, 16, 6, 22, 32, 9, 14, 14, 7, 25, 6, 17, 25, 18, 23, 12, 21, 13, 29, 24, 33, 9, 20, 24, 17, 10, 22, 38, 22, 8, 31, 29, 25, 28, 28, 25, 13, 15, 22, 26, 11, 23, 15, 12, 17, 13, 12, 21, 14, 21, 22, 11, 12, 19, 12, 25, 24}},
	{ID: "Jer", Name: "Jeremiah", USFM: "JER", Aliases: []string{"jr"}, Chapters: []int{19, 37, 25, 31, 31, 30, 34, 22, 26, 25, 23, 17, 27, 22, 21, 21, 27, 23, 15, 18, 14, 30, 40, 10, 38, 24, 22, 17, 32, 24, 40, 44, 26, 22, 19, 32, 21, 28, 18, 16, 18, 22, 13, 30, 5, 28, 7, 47, 39, 46, 64, 34}},
	{ID: "Lam", Name: "Lamentations", USFM: "LAM", Chapters: []int{22, 22, 66, 22, 22}},
	{ID: "Ezek", Name: "Ezekiel", USFM: "EZK", Aliases: []string{"eze", "ezk"}, Chapters: []int{28, 10, 27, 17, 17, 14, 27, 18, 11, 22, 25, 28, 23, 23, 8, 63, 24, 32, 14, 49, 32, 31, 49, 27, 17, 21, 36, 26, 21, 26, 18, 32, 33, 31, 15, 38, 28, 23, 29, 49, 26, 20, 27, 31, 25, 24, 23, 35}},
	{ID: "Dan", Name: "Daniel", USFM: "DAN", Aliases: []string{"dn"}, Chapters: []int{21, 49, 30, 37, 31, 28, 28, 27, 27, 21, 45, 13}},
	{ID: "Hos", Name: "Hosea", USFM: "HOS", Chapters: []int{11, 23, 5, 19, 15, 11, 16, 14, 17, 15, 12, 14, 16, 9}},
	{ID: "Joel", Name: "Joel", USFM: "JOL", Aliases: []string{"jl"}, Chapters: []int{20, 32, 21}},
	{ID: "Amos", Name: "Amos", USFM: "AMO", Chapters: []int{15, 16, 15, 13, 27, 14, 17, 14, 15}},
	{ID: "Obad", Name: "Obadiah", USFM: "OBA", Chapters: []int{21}},
	{ID: "Jonah", Name: "Jonah", USFM: "JON", Aliases: []string{"jnh"}, Chapters: []int{17, 10, 10, 11}},
	{ID: "Mic", Name: "Micah", USFM: "MIC", Aliases: []string{"mc"}, Chapters: []int{16, 13, 12, 13, 15, 16, 20}},
	{ID: "Nah", Name: "Nahum", USFM: "NAM", Chapters: []int{15, 13, 19}},
	{ID: "Hab", Name: "Habakkuk", USFM: "HAB", Aliases: []string{"hb"}, Chapters: []int{17, 20, 19}},
	{ID: "Zeph", Name: "Zephaniah", USFM: "ZEP", Aliases: []string{"zp"}, Chapters: []int{18, 15, 20}},
	{ID: "Hag", Name: "Haggai", USFM: "HAG", Aliases: []string{"hg"}, Chapters: []int{15, 23}},
	{ID: "Zech", Name: "Zechariah", USFM: "ZEC", Aliases: []string{"zc"}, Chapters: []int{21, 13, 10, 14, 11, 15, 14, 23, 17, 12, 17, 14, 9, 21}},
	{ID: "Mal", Name: "Malachi", USFM: "MAL", Aliases: []string{"ml"}, Chapters: []int{14, 17, 18, 6}},
	// New Testament
	{ID: "Matt", Name: "Matthew", USFM: "MAT", Aliases: []string{"mt"}, Chapters: []int{25, 23, 17, 25, 48, 34, 29, 34, 38, 42, 30, 50, 58, 36, 39, 28, 27, 35, 30, 34, 46, 46, 39, 51, 46, 75, 66, 20}},
	{ID: "Mark", Name: "Mark", USFM: "MRK", Aliases: []string{"mk"}, Chapters: []int{45, 28, 35, 41, 43, 56, 37, 38, 50, 52, 33, 44, 37, 72, 47, 20}},
	{ID: "Luke", Name: "Luke", USFM: "LUK", Aliases: []string{"lk"}, Chapters: []int{80, 52, 38, 44, 39, 49, 50, 56, 62, 42, 54, 59, 35, 35, 32, 31, 37, 43, 48, 47, 38, 71, 56, 53}},
	{ID: "John", Name: "John", USFM: "JHN", Aliases: []string{"jn", "joh"}, Chapters: []int{51, 25, 36, 54, 47, 71, 53, 59, 41, 42, 57, 50, 38, 31, 27, 33, 26, 40, 42, 31, 25}},
	{ID: "Acts", Name: "Acts", USFM: "ACT", Chapters: []int{26, 47, 26, 37, 42, 15, 60, 40, 43, 48, 30, 25, 52, 28, 41, 40, 34, 28, 41, 38, 40, 30, 35, 27, 27, 32, 44, 31}},
	{ID: "Rom", Name: "Romans", USFM: "ROM", Aliases: []string{"rm"}, Chapters: []int{32, 29, 31, 25, 21, 23, 25, 39, 33, 21, 36, 21, 14, 23, 33, 27}},
	{ID: "1Cor", Name: "1 Corinthians", USFM: "1CO", Chapters: []int{31, 16, 23, 21, 13, 20, 40, 13, 27, 33, 34, 31, 13, 40, 58, 24}},
	{ID: "2Cor", Name: "2 Corinthians", USFM: "2CO", Chapters: []int{24, 17, 18, 18, 21, 18, 16, 24, 15, 18, 33, 21, 14}},
	{ID: "Gal", Name: "Galatians", USFM: "GAL", Chapters: []int{24, 21, 29, 31, 26, 18}},
	{ID: "Eph", Name: "Ephesians", USFM: "EPH", Aliases: []string{"ephes"}, Chapters: []int{23, 22, 21, 32, 33, 24}},
	{ID: "Phil", Name: "Philippians", USFM: "PHP", Aliases: []string{"php"}, Chapters: []int{30, 30, 21, 23}},
	{ID: "Col", Name: "Colossians", USFM: "COL", Chapters: []int{29, 23, 25, 18}},
	{ID: "1Thess", Name: "1 Thessalonians", USFM: "1TH", Aliases: []string{"1thes"}, Chapters: []int{10, 20, 13, 18, 28}},
	{ID: "2Thess", Name: "2 Thessalonians", USFM: "2TH", Aliases: []string{"2thes"}, Chapters: []int{12, 17, 18}},
	{ID: "1Tim", Name: "1 Timothy", USFM: "1TI", Chapters: []int{20, 15, 16, 16, 25, 21}},
	{ID: "2Tim", Name: "2 Timothy", USFM: "2TI", Chapters: []int{18, 26, 17, 22}},
	{ID: "Titus", Name: "Titus", USFM: "TIT", Chapters: []int{16, 15, 15}},
	{ID: "Phlm", Name: "Philemon", USFM: "PHM", Aliases: []string{"philem"}, Chapters: []int{25}},
	{ID: "Heb", Name: "Hebrews", USFM: "HEB", Chapters: []int{14, 18, 19, 16, 14, 20, 28, 13, 28, 39, 40, 29, 25}},
	{ID: "Jas", Name: "James", USFM: "JAS", Aliases: []string{"jm"}, Chapters: []int{27, 26, 18, 17, 20}},
	{ID: "1Pet", Name: "1 Peter", USFM: "1PE", Aliases: []string{"1pt"}, Chapters: []int{25, 25, 22, 19, 14}},
	{ID: "2Pet", Name: "2 Peter", USFM: "2PE", Aliases: []string{"2pt"}, Chapters: []int{21, 22, 18}},
	{ID: "1John", Name: "1 John", USFM: "1JN", Aliases: []string{"1jhn"}, Chapters: []int{10, 29, 24, 21, 21}},
	{ID: "2John", Name: "2 John", USFM: "2JN", Aliases: []string{"2jhn"}, Chapters: []int{13}},
	{ID: "3John", Name: "3 John", USFM: "3JN", Aliases: []string{"3jhn"}, Chapters: []int{14}},
	{ID: "Jude", Name: "Jude", USFM: "JUD", Aliases: []string{"jud"}, Chapters: []int{25}},
	{ID: "Rev", Name: "Revelation", USFM: "REV", Aliases: []string{"revelations", "apocalypse", "rv"}, Chapters: []int{20, 29, 22, 11, 14, 17, 17, 13, 21, 11, 19, 17, 18, 20, 8, 21, 18, 24, 21, 15, 27, 21}},
}
