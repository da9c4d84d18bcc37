package db

// book holds canonical metadata for one bible book.
type book struct {
	Name     string
	Order    int
	Chapters int
}

// canonicalBooks lists the 66-book protestant canon with chapter counts.
// Imported translations reuse these counts unless they carry their own
// bible_books rows.
var canonicalBooks = []book{
	{"Genesis", 1, 50},
	{"Exodus", 2, 40},
	{"Leviticus", 3, 27},
	{"Numbers", 4, 36},
	{"Deuteronomy", 5, 34},
	{"Joshua", 6, 24},
	{"Judges", 7, 21},
	{"Ruth", 8, 4},
	{"1 Samuel", 9, 31},
	{"2 Samuel", 10, 24},
	{"1 Kings", 11, 22},
	{"2 Kings", 12, 25},
	{"1 Chronicles", 13, 29},
	{"2 Chronicles", 14, 36},
	{"Ezra", 15, 10},
	{"Nehemiah", 16, 13},
	{"Esther", 17, 10},
	{"Job", 18, 42},
	{"Psalms", 19, 150},
	{"Proverbs", 20, 31},
	{"Ecclesiastes", 21, 12},
	{"Song of Solomon", 22, 8},
	{"Isaiah", 23, 66},
	{"Jeremiah", 24, 52},
	{"Lamentations", 25, 5},
	{"Ezekiel", 26, 48},
	{"Daniel", 27, 12},
	{"Hosea", 28, 14},
	{"Joel", 29, 3},
	{"Amos", 30, 9},
	{"Obadiah", 31, 1},
	{"Jonah", 32, 4},
	{"Micah", 33, 7},
	{"Nahum", 34, 3},
	{"Habakkuk", 35, 3},
	{"Zephaniah", 36, 3},
	{"Haggai", 37, 2},
	{"Zechariah", 38, 14},
	{"Malachi", 39, 4},
	{"Matthew", 40, 28},
	{"Mark", 41, 16},
	{"Luke", 42, 24},
	{"John", 43, 21},
	{"Acts", 44, 28},
	{"Romans", 45, 16},
	{"1 Corinthians", 46, 16},
	{"2 Corinthians", 47, 13},
	{"Galatians", 48, 6},
	{"Ephesians", 49, 6},
	{"Philippians", 50, 4},
	{"Colossians", 51, 4},
	{"1 Thessalonians", 52, 5},
	{"2 Thessalonians", 53, 5},
	{"1 Timothy", 54, 6},
	{"2 Timothy", 55, 4},
	{"Titus", 56, 3},
	{"Philemon", 57, 1},
	{"Hebrews", 58, 13},
	{"James", 59, 5},
	{"1 Peter", 60, 5},
	{"2 Peter", 61, 3},
	{"1 John", 62, 5},
	{"2 John", 63, 1},
	{"3 John", 64, 1},
	{"Jude", 65, 1},
	{"Revelation", 66, 22},
}

// defaultTranslation keys the seeded chapter counts. Additional
// translations are created by the import pipeline with their own rows.
const defaultTranslation = "VDC"

// seedBooks inserts canonical chapter counts on first run.
func (d *DB) seedBooks() error {
	var count int
	if err := d.QueryRow("SELECT count(*) FROM bible_books").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	stmt := `INSERT INTO bible_books (translation, name, book_order, chapters) VALUES (?, ?, ?, ?)`
	for _, b := range canonicalBooks {
		if _, err := d.Exec(stmt, defaultTranslation, b.Name, b.Order, b.Chapters); err != nil {
			return err
		}
	}
	return nil
}
