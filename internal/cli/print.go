package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/knockbot/knockbot/internal/domain"
)

var (
	jokeCard = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Faint(true)
)

type jokeJSON struct {
	Seed      uint64 `json:"seed"`
	Variant   string `json:"variant"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Text      string `json:"text"`
}

func printJoke(w io.Writer, j domain.Joke, seed uint64, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jokeJSON{
			Seed:      seed,
			Variant:   j.Variant,
			FirstName: j.FirstName,
			Surname:   j.Surname,
			Text:      j.Text,
		})
	case "plain":
		_, err := fmt.Fprintln(w, j.Text)
		return err
	case "pretty", "":
		_, err := fmt.Fprintln(w, jokeCard.Render(j.Text)+"\n"+
			dimStyle.Render(fmt.Sprintf("variant=%s seed=%d", j.Variant, seed)))
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|plain|json)", format)
	}
}

// printPosting is shown before credentials are read.
func printPosting(w io.Writer, j domain.Joke) {
	fmt.Fprintln(w, "Posting this:")
	fmt.Fprintln(w, j.Text)
	fmt.Fprintln(w)
}

func printPosted(w io.Writer, dryRun bool, res domain.PublishResult) {
	if dryRun {
		fmt.Fprintln(w, "(test mode, not posting)")
		return
	}
	fmt.Fprintln(w, "Posted:")
	fmt.Fprintln(w, res.Permalink)
}

func printHistory(w io.Writer, runs []domain.RunArtifact, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case "pretty", "plain", "":
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}
		for _, r := range runs {
			status := "posted"
			if r.DryRun {
				status = "dry-run"
			}
			fmt.Fprintf(w, "%s  %-7s  %-4s  %s %s\n",
				r.StartedAt.Local().Format(time.DateTime), status, r.Variant, r.FirstName, r.Surname)
			if r.Permalink != "" {
				fmt.Fprintf(w, "  %s\n", r.Permalink)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
