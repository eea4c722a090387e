package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/rolodex"
	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/ingest"
)

// Seed records in name|phones|emails|birthday form; phones and emails
// are semicolon-separated.
var records = []string{
	"Anna Kowalska|123456789;987654321|anna.kowalska@example.com|1990-04-10",
	"Jan Nowak|555123456|jan.nowak@example.com|1985-12-01",
	"Maria Wiśniewska|600700800|maria.wisniewska@example.com|1992-07-23",
	"Piotr Zieliński|511222333|piotr.zielinski@example.com|1978-02-14",
	"Katarzyna Wójcik|722333444||1995-09-30",
	"Tomasz Kamiński|831442553|tomasz.kaminski@example.com|",
	"Agnieszka Lewandowska|944556677|agnieszka.lewandowska@example.com|1988-11-11",
	"Marek Dąbrowski|655443321||",
	"Joanna Szymańska|766554433|joanna.szymanska@example.com|1999-01-05",
	"Krzysztof Woźniak|877665544|krzysztof.wozniak@example.com|1982-06-18",
	"Magdalena Kozłowska|988776655||1991-03-27",
	"Andrzej Jankowski|199887766|andrzej.jankowski@example.com|1975-08-08",
	"Ewa Mazur|211998877|ewa.mazur@example.com|",
	"Paweł Krawczyk|322119988||1993-10-15",
	"Monika Kaczmarek|433221199|monika.kaczmarek@example.com|1987-05-02",
}

var (
	dbPath       = flag.String("db", "./rolodex_db", "BadgerDB database directory")
	seedFileName = flag.String("src", "", "file of seed data, one record per line")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// contactFromLine parses a pipe-separated seed record.
func contactFromLine(line string) (*core.Contact, error) {
	parts := strings.Split(line, "|")
	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	contact := &core.Contact{Name: field(0)}
	for _, value := range strings.Split(field(1), ";") {
		if value == "" {
			continue
		}
		phone, err := core.NewPhone(value)
		if err != nil {
			return nil, err
		}
		contact.AddPhone(phone)
	}
	for _, value := range strings.Split(field(2), ";") {
		if value == "" {
			continue
		}
		email, err := core.NewEmail(value)
		if err != nil {
			return nil, err
		}
		contact.AddEmail(email)
	}
	if value := field(3); value != "" {
		birthday, err := core.NewBirthday(value)
		if err != nil {
			return nil, err
		}
		contact.Birthday = &birthday
	}
	if err := core.ValidateContact(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// importBatched parses seed lines and imports contacts in batches.
func importBatched(ctx context.Context, importer *ingest.Importer, source iter.Seq[string], batchSize int) (int, error) {
	total := 0
	batch := make([]*core.Contact, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		added, err := importer.Import(ctx, batch)
		if err != nil {
			return err
		}
		total += added
		batch = batch[:0]
		return nil
	}

	for line := range source {
		if strings.TrimSpace(line) == "" {
			continue
		}
		contact, err := contactFromLine(line)
		if err != nil {
			return total, err
		}
		batch = append(batch, contact)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	return total, flush()
}

func main() {
	db, err := rolodex.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	b, err := db.LoadBook(ctx)
	if err != nil {
		panic(err)
	}

	importer, err := db.NewImporter(b)
	if err != nil {
		panic(err)
	}
	defer importer.Release()

	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(records)
	}

	// Import in batches of 5
	added, err := importBatched(ctx, importer, source, 5)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Seeded %d contacts.\n", added)
}
