// Command seed backfills demo snippets and journals for a user so the app
// has realistic history to browse. Journals written here are plain
// concatenations; real generation only happens through the API.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/daybook-labs/daybook-backend/internal/store"
)

var morningActivities = []string{
	"Woke up feeling refreshed and ready for the day",
	"Had a healthy breakfast with oatmeal and fruits",
	"Did some morning stretches and yoga",
	"Started working on my project early",
	"Went for a morning walk in the park",
	"Had coffee with a friend",
	"Read a chapter of my book",
	"Meditated for 15 minutes",
}

var afternoonActivities = []string{
	"Had a productive team meeting",
	"Grabbed lunch with colleagues",
	"Worked on some challenging code",
	"Took a short break to clear my mind",
	"Attended a workshop on new technologies",
	"Had a client presentation",
	"Solved a complex bug",
	"Collaborated with team members",
}

var eveningActivities = []string{
	"Wrapped up work for the day",
	"Went to the gym for a workout",
	"Cooked dinner with my partner",
	"Watched an episode of my favorite show",
	"Called my family to catch up",
	"Planned tomorrow's tasks",
	"Did some light reading",
	"Wrote in my journal",
}

type snippetRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Entry     string `json:"entry"`
	CreatedAt string `json:"created_at"`
}

func main() {
	userFlag := flag.String("user", "", "user UUID to seed data for (required)")
	daysFlag := flag.Int("days", 7, "number of past days to backfill")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatal("-user must be a valid UUID")
	}
	if *daysFlag <= 0 {
		log.Fatal("-days must be positive")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	projectURL := os.Getenv("SUPABASE_URL")
	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if projectURL == "" || serviceKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set")
	}

	client, err := store.NewClient(projectURL, serviceKey, 10*time.Second)
	if err != nil {
		log.Fatal("Failed to create store client: ", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()

	for dayOffset := *daysFlag; dayOffset >= 1; dayOffset-- {
		day := now.AddDate(0, 0, -dayOffset)
		rows := dayRows(day, userID)

		if _, err := client.Request(ctx, http.MethodPost, "snippets", rows, ""); err != nil {
			log.Fatalf("insert snippets for %s: %v", day.Format("2006-01-02"), err)
		}

		entries := make([]string, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, row.Entry)
		}
		journal := map[string]interface{}{
			"user_id": userID.String(),
			"date":    day.Format("2006-01-02"),
			"entry":   strings.Join(entries, "\n\n"),
		}
		if _, err := client.Request(ctx, http.MethodPost, "journals", journal, ""); err != nil {
			log.Fatalf("insert journal for %s: %v", day.Format("2006-01-02"), err)
		}

		log.Printf("Seeded %d snippets and 1 journal for %s", len(rows), day.Format("2006-01-02"))
	}

	log.Printf("Done: %d days of data for user %s", *daysFlag, userID)
}

// dayRows builds 2-3 morning, 2-4 afternoon, and 2-3 evening snippets at
// plausible hours of the given day.
func dayRows(day time.Time, userID uuid.UUID) []snippetRow {
	var rows []snippetRow

	pick := func(pool []string, n int) []string {
		out := append([]string(nil), pool...)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out[:n]
	}

	for i, entry := range pick(morningActivities, 2+rand.Intn(2)) {
		rows = append(rows, row(day, 7+i*2, userID, entry))
	}
	for i, entry := range pick(afternoonActivities, 2+rand.Intn(3)) {
		rows = append(rows, row(day, 12+i, userID, entry))
	}
	for i, entry := range pick(eveningActivities, 2+rand.Intn(2)) {
		rows = append(rows, row(day, 18+i*2, userID, entry))
	}
	return rows
}

func row(day time.Time, hour int, userID uuid.UUID, entry string) snippetRow {
	ts := time.Date(day.Year(), day.Month(), day.Day(), hour, rand.Intn(60), 0, 0, time.UTC)
	return snippetRow{
		ID:        uuid.NewString(),
		UserID:    userID.String(),
		Entry:     entry,
		CreatedAt: ts.Format(time.RFC3339),
	}
}
