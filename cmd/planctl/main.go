package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/foxxcyber/breakfast-club/internal/config"
	"github.com/foxxcyber/breakfast-club/internal/database"
	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/services"
	"github.com/foxxcyber/breakfast-club/internal/store"
)

// leftoverFlags collects repeated -leftover key=qty values
type leftoverFlags []string

func (l *leftoverFlags) String() string {
	return strings.Join(*l, ",")
}

func (l *leftoverFlags) Set(value string) error {
	if _, _, err := parseLeftover(value); err != nil {
		return err
	}
	*l = append(*l, value)
	return nil
}

func parseLeftover(value string) (string, float64, error) {
	key, raw, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", 0, fmt.Errorf("expected key=qty, got %q", value)
	}
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid quantity in %q", value)
	}
	return strings.TrimSpace(key), qty, nil
}

func main() {
	// Command line flags
	monday := flag.Int("mon", -1, "Monday attendance (default: saved or configured value)")
	tuesday := flag.Int("tue", -1, "Tuesday attendance (default: saved or configured value)")
	offline := flag.Bool("offline", false, "Skip the live price feed and use demo prices")
	asJSON := flag.Bool("json", false, "Print the plan as JSON")
	useDB := flag.Bool("db", false, "Load and save attendance and leftovers using DATABASE_URL")
	hash := flag.String("hash", "", "Print a bcrypt hash of this passphrase for KITCHEN_PASSPHRASE_HASH and exit")
	var leftovers leftoverFlags
	flag.Var(&leftovers, "leftover", "Reported leftover as key=qty (repeatable)")
	flag.Parse()

	if *hash != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*hash), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash passphrase: %v", err)
		}
		fmt.Println(string(hashed))
		return
	}

	// Load .env
	godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	var repo services.StateRepository
	if *useDB {
		if cfg.DatabaseURL == "" {
			log.Fatal("-db requires DATABASE_URL")
		}
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repo = db
	}

	st := store.New(models.Attendance{Monday: cfg.DefaultMonday, Tuesday: cfg.DefaultTuesday})
	feed := services.NewFeedService(cfg.FeedBaseURL, cfg.FeedLive && !*offline, cfg.FeedTimeout, cfg.FeedRatePerMinute)
	planning := services.NewPlanningService(st, feed, repo)

	if err := planning.Restore(ctx); err != nil {
		log.Fatalf("Failed to load saved state: %v", err)
	}

	draft := planning.AttendanceState().Draft
	if *monday >= 0 {
		draft.Monday = *monday
	}
	if *tuesday >= 0 {
		draft.Tuesday = *tuesday
	}
	planning.UpdateDraft(ctx, draft.Monday, draft.Tuesday)

	for _, value := range leftovers {
		key, qty, _ := parseLeftover(value)
		if _, err := planning.SetLeftover(ctx, key, qty); err != nil {
			log.Fatalf("Leftover %q: %v", key, err)
		}
	}

	plan := planning.CommitAttendance(ctx)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			log.Fatalf("Failed to encode plan: %v", err)
		}
		return
	}

	printPlan(os.Stdout, plan)
}

func printPlan(out io.Writer, plan *models.Plan) {
	fmt.Fprintf(out, "Attendance: Monday %d, Tuesday %d (%d children)\n",
		plan.Attendance.Monday, plan.Attendance.Tuesday, plan.TotalChildren)
	if plan.ModeMessage != "" {
		fmt.Fprintln(out, plan.ModeMessage)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tREQUIRED\tLEFTOVER\tTO BUY\tUNIT")
	for _, item := range plan.Items {
		leftover := "-"
		if item.LeftoverReported {
			leftover = strconv.FormatFloat(item.LeftoverQty, 'f', -1, 64)
		}
		fmt.Fprintf(w, "%s\t%g\t%s\t%g\t%s\n",
			item.Ingredient, item.DisplayRequired, leftover, item.DisplayToBuy, item.UnitLabel)
	}
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VENDOR\tQUOTE\t")
	for _, v := range plan.Vendors {
		marker := ""
		if v.IsCheapest {
			marker = "cheapest"
		}
		if v.Missing {
			marker = "no quote"
		}
		fmt.Fprintf(w, "%s\t$%.2f\t%s\n", v.DisplayName, v.RawTotal, marker)
	}
	w.Flush()

	fmt.Fprintf(out, "\nEstimated spend at %s: $%.2f (%.0f%% still to buy)\n",
		plan.CheapestName, plan.AdjustedCost, plan.ToBuyRatio*100)
	fmt.Fprintf(out, "Calories: %d of %d optimal (%.1f%%)\n",
		plan.EstimatedActualCalories, plan.OptimalCalories, plan.Calories.FillPercent)
}
