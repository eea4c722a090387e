// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/rolodex"
	"github.com/poiesic/rolodex/book"
	"github.com/poiesic/rolodex/config"
	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/ingest"
	"github.com/poiesic/rolodex/notes"
	"github.com/poiesic/rolodex/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "rolodex",
		Usage: "Console contact book with fuzzy search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to config file",
				Value: config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a contact",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Full name",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "phone",
						Aliases: []string{"p"},
						Usage:   "Phone number (nine digits, repeatable)",
					},
					&cli.StringSliceFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Email address (repeatable)",
					},
					&cli.StringFlag{
						Name:    "birthday",
						Aliases: []string{"b"},
						Usage:   "Birthday in YYYY-MM-DD form",
					},
					&cli.StringFlag{
						Name:  "street",
						Usage: "Street and number",
					},
					&cli.StringFlag{
						Name:  "city",
						Usage: "City",
					},
					&cli.StringFlag{
						Name:  "postal-code",
						Usage: "Postal code",
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Country",
					},
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete a contact by id, or list candidates by name",
				Action: deleteCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "id",
						Usage: "Identifier of the contact to delete",
					},
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "List matching contacts and their ids",
					},
				},
			},
			{
				Name:   "edit",
				Usage:  "Edit a contact by id",
				Action: editCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Identifier of the contact to edit",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "rename",
						Usage: "New full name",
					},
					&cli.StringSliceFlag{
						Name:  "add-phone",
						Usage: "Phone number to add (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "remove-phone",
						Usage: "Phone number to remove (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "add-email",
						Usage: "Email address to add (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "remove-email",
						Usage: "Email address to remove (repeatable)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search contacts by name, phone, or email",
				ArgsUsage: "TERM",
				Action:    searchCommand,
			},
			{
				Name:   "list",
				Usage:  "List all contacts, paged",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Contacts per page",
					},
				},
			},
			{
				Name:   "birthdays",
				Usage:  "Show days until each stored birthday",
				Action: birthdaysCommand,
			},
			{
				Name:  "note",
				Usage: "Manage free-text notes",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Create a note",
						ArgsUsage: "TITLE BODY",
						Action:    noteAddCommand,
					},
					{
						Name:   "list",
						Usage:  "List all notes by title",
						Action: noteListCommand,
					},
					{
						Name:      "show",
						Usage:     "Show notes whose title matches",
						ArgsUsage: "TITLE",
						Action:    noteShowCommand,
					},
					{
						Name:      "edit",
						Usage:     "Replace a note's body",
						ArgsUsage: "TITLE BODY",
						Action:    noteEditCommand,
					},
					{
						Name:      "delete",
						Usage:     "Delete a note by title",
						ArgsUsage: "TITLE",
						Action:    noteDeleteCommand,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Bulk import contacts from a CSV file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to CSV file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for persistence",
						Value: 2,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// resolveConfig loads the config file and applies CLI overrides.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if dbPath := c.String("db"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openBook opens the database and rebuilds the in-memory book.
func openBook(c *cli.Context) (config.Config, *rolodex.Database, *book.Book, error) {
	cfg, err := resolveConfig(c)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	db, err := rolodex.NewDatabase(cfg.DBPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	b, err := db.LoadBook(context.Background())
	if err != nil {
		db.Close()
		return config.Config{}, nil, nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return cfg, db, b, nil
}

func addCommand(c *cli.Context) error {
	contact, err := buildContact(
		c.String("name"),
		c.StringSlice("phone"),
		c.StringSlice("email"),
		c.String("birthday"),
		c.String("street"), c.String("city"), c.String("postal-code"), c.String("country"),
	)
	if err != nil {
		return err
	}

	_, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.AddContact(context.Background(), b, contact)
	if err != nil {
		return err
	}
	fmt.Printf("Added contact with id %d.\n", id)
	return nil
}

func deleteCommand(c *cli.Context) error {
	if !c.IsSet("id") && c.String("name") == "" {
		return fmt.Errorf("either --id or --name is required")
	}

	_, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if name := c.String("name"); name != "" && !c.IsSet("id") {
		entries := b.FindByName(name)
		if len(entries) == 0 {
			fmt.Println("No matching contacts.")
			return nil
		}
		fmt.Println("Matching contacts; rerun with --id to delete one:")
		for _, entry := range entries {
			fmt.Printf("  %s\n", formatContact(entry.Contact))
		}
		return nil
	}

	id := core.ID(c.Uint64("id"))
	deleted, err := db.DeleteContact(context.Background(), b, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No contact with id %d.\n", id)
		return nil
	}
	fmt.Printf("Deleted contact %d.\n", id)
	return nil
}

func editCommand(c *cli.Context) error {
	_, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	id := core.ID(c.Uint64("id"))
	contact, ok := b.Get(id)
	if !ok {
		return fmt.Errorf("no contact with id %d", id)
	}

	if name := c.String("rename"); name != "" {
		if err := contact.Rename(name); err != nil {
			return err
		}
	}
	for _, value := range c.StringSlice("add-phone") {
		phone, err := core.NewPhone(value)
		if err != nil {
			return err
		}
		contact.AddPhone(phone)
	}
	for _, value := range c.StringSlice("remove-phone") {
		phone, err := core.NewPhone(value)
		if err != nil {
			return err
		}
		if !contact.RemovePhone(phone) {
			return fmt.Errorf("contact %d has no phone %s", id, value)
		}
	}
	for _, value := range c.StringSlice("add-email") {
		email, err := core.NewEmail(value)
		if err != nil {
			return err
		}
		contact.AddEmail(email)
	}
	for _, value := range c.StringSlice("remove-email") {
		email, err := core.NewEmail(value)
		if err != nil {
			return err
		}
		if !contact.RemoveEmail(email) {
			return fmt.Errorf("contact %d has no email %s", id, value)
		}
	}

	if err := db.UpdateContact(context.Background(), b, contact); err != nil {
		return err
	}
	fmt.Printf("Updated contact %d.\n", id)
	fmt.Println(formatContact(contact))
	return nil
}

func searchCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if term == "" {
		return fmt.Errorf("search term is required")
	}

	cfg, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	found := b.FindExact(term)
	if len(found) > 0 {
		for _, contact := range found {
			fmt.Println(formatContact(contact))
		}
		return nil
	}

	fmt.Println("No matching contacts.")
	suggestion, err := db.Suggest(b, term)
	if err != nil {
		// Empty book; nothing to suggest.
		return nil
	}
	if search.NormalizedDistance(term, suggestion) <= cfg.SuggestionCutoff {
		fmt.Printf("Did you mean %q?\n", suggestion)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	cfg, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if b.Len() == 0 {
		fmt.Println("The contact book is empty.")
		return nil
	}

	pageSize := c.Int("page-size")
	if pageSize == 0 {
		pageSize = cfg.PageSize
	}

	pageNo := 0
	for page := range b.Pages(pageSize) {
		pageNo++
		fmt.Printf("--- page %d ---\n", pageNo)
		for _, contact := range page {
			fmt.Println(formatContact(contact))
		}
	}
	return nil
}

func birthdaysCommand(c *cli.Context) error {
	_, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now()
	found := false
	for page := range b.Pages(0) {
		for _, contact := range page {
			if contact.Birthday == nil {
				continue
			}
			found = true
			fmt.Printf("%s: %s (%d days)\n",
				contact.Name, contact.Birthday, contact.Birthday.DaysUntil(now))
		}
	}
	if !found {
		fmt.Println("No stored birthdays.")
	}
	return nil
}

// openNotebook opens the database and rebuilds the in-memory notebook.
func openNotebook(c *cli.Context) (config.Config, *rolodex.Database, *notes.Notebook, error) {
	cfg, err := resolveConfig(c)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	db, err := rolodex.NewDatabase(cfg.DBPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	nb, err := db.LoadNotebook(context.Background())
	if err != nil {
		db.Close()
		return config.Config{}, nil, nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return cfg, db, nb, nil
}

func noteAddCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: note add TITLE BODY")
	}
	title := c.Args().Get(0)
	body := strings.Join(c.Args().Slice()[1:], " ")

	_, db, nb, err := openNotebook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateNote(context.Background(), nb, &core.Note{Title: title, Body: body}); err != nil {
		return err
	}
	fmt.Printf("Created note %q.\n", title)
	return nil
}

func noteListCommand(c *cli.Context) error {
	_, db, nb, err := openNotebook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if nb.Len() == 0 {
		fmt.Println("No stored notes.")
		return nil
	}
	for i, title := range nb.Titles() {
		fmt.Printf("%d: %s\n", i+1, title)
	}
	return nil
}

func noteShowCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if term == "" {
		return fmt.Errorf("note title is required")
	}

	cfg, db, nb, err := openNotebook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	found := nb.Find(term)
	if len(found) > 0 {
		for _, note := range found {
			fmt.Println(formatNote(note))
		}
		return nil
	}

	fmt.Println("No matching notes.")
	suggestion, err := db.SuggestNote(nb, term)
	if err != nil {
		// Empty notebook; nothing to suggest.
		return nil
	}
	if search.NormalizedDistance(term, suggestion) <= cfg.SuggestionCutoff {
		fmt.Printf("Did you mean %q?\n", suggestion)
	}
	return nil
}

func noteEditCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: note edit TITLE BODY")
	}
	title := c.Args().Get(0)
	body := strings.Join(c.Args().Slice()[1:], " ")

	_, db, nb, err := openNotebook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	note, err := db.EditNote(context.Background(), nb, title, body)
	if err != nil {
		return err
	}
	fmt.Printf("Updated note %q.\n", note.Title)
	return nil
}

func noteDeleteCommand(c *cli.Context) error {
	title := strings.Join(c.Args().Slice(), " ")
	if title == "" {
		return fmt.Errorf("note title is required")
	}

	_, db, nb, err := openNotebook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := db.DeleteNote(context.Background(), nb, title)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No note titled %q.\n", title)
		return nil
	}
	fmt.Printf("Deleted note %q.\n", title)
	return nil
}

// formatNote renders a note title followed by its body.
func formatNote(note *core.Note) string {
	return fmt.Sprintf("%s\n  %s", note.Title, note.Body)
}

func importCommand(c *cli.Context) error {
	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	contacts, err := parseContactsCSV(file)
	if err != nil {
		return err
	}

	_, db, b, err := openBook(c)
	if err != nil {
		return err
	}
	defer db.Close()

	importer, err := db.NewImporter(b, ingest.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer importer.Release()

	added, err := importer.Import(context.Background(), contacts)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d contacts.\n", added, len(contacts))
	return nil
}

// parseContactsCSV reads contacts from CSV records of the form
// name,phones,emails,birthday,street,city,postal_code,country where
// phones and emails are semicolon-separated. Only name is required;
// trailing columns may be omitted.
func parseContactsCSV(r io.Reader) ([]*core.Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var contacts []*core.Contact
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line++

		field := func(i int) string {
			if i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		contact, err := buildContact(
			field(0),
			splitList(field(1)),
			splitList(field(2)),
			field(3),
			field(4), field(5), field(6), field(7),
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// buildContact assembles a contact from raw field values, validating
// each through its constructor.
func buildContact(name string, phones, emails []string, birthday, street, city, postalCode, country string) (*core.Contact, error) {
	contact := &core.Contact{Name: name}
	for _, value := range phones {
		phone, err := core.NewPhone(value)
		if err != nil {
			return nil, err
		}
		contact.AddPhone(phone)
	}
	for _, value := range emails {
		email, err := core.NewEmail(value)
		if err != nil {
			return nil, err
		}
		contact.AddEmail(email)
	}
	if birthday != "" {
		b, err := core.NewBirthday(birthday)
		if err != nil {
			return nil, err
		}
		contact.Birthday = &b
	}
	if street != "" || city != "" || postalCode != "" || country != "" {
		contact.Address = &core.Address{
			Street:     street,
			City:       city,
			PostalCode: postalCode,
			Country:    country,
		}
	}
	if err := core.ValidateContact(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// formatContact renders a contact on one or two lines for console output.
func formatContact(contact *core.Contact) string {
	phones := make([]string, len(contact.Phones))
	for i, p := range contact.Phones {
		phones[i] = p.String()
	}
	emails := make([]string, len(contact.Emails))
	for i, e := range contact.Emails {
		emails[i] = e.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID: %d, Name: %s, Phones: %s, Emails: %s",
		contact.Id, contact.Name, strings.Join(phones, ", "), strings.Join(emails, ", "))
	if contact.Birthday != nil {
		fmt.Fprintf(&sb, ", Birthday: %s (%d days)",
			contact.Birthday, contact.Birthday.DaysUntil(time.Now()))
	}
	if contact.Address != nil {
		fmt.Fprintf(&sb, "\n  Address: %s", contact.Address)
	}
	return sb.String()
}
