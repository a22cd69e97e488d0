package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"newspulse/internal/config"
	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/auth"
	briefUC "newspulse/internal/usecase/briefing"
	scrapUC "newspulse/internal/usecase/scrap"
	"newspulse/internal/usecase/summary"
)

/* ───────── summary ───────── */

type summaryCommand struct {
	app  *app
	File string `short:"f" long:"file" description:"Read the summary from a file instead of stdin"`
	JSON bool   `long:"json" description:"Print the sections as JSON"`
}

func (c *summaryCommand) Execute(args []string) error {
	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case c.File != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return err
		}
		text = string(b)
	default:
		b, err := io.ReadAll(c.app.in)
		if err != nil {
			return err
		}
		text = string(b)
	}

	p := summary.Parse(text)
	if c.JSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"intro":      p.Intro,
			"body":       p.Body,
			"conclusion": p.Conclusion,
			"preview":    summary.Preview(text),
		})
	}

	if !p.HasSections() {
		c.app.printf("%s\n", strings.TrimSpace(p.Raw))
		return nil
	}
	for _, s := range []struct {
		label string
		text  *string
	}{{"서론", p.Intro}, {"본론", p.Body}, {"결론", p.Conclusion}} {
		if s.text != nil {
			c.app.printf("[%s]\n%s\n\n", s.label, *s.text)
		}
	}
	return nil
}

/* ───────── scraps ───────── */

type scrapsCommand struct {
	app      *app
	Category string `short:"c" long:"category" description:"Only show this category"`
	Query    string `short:"q" long:"query" description:"Title search"`
	Sort     string `short:"s" long:"sort" default:"desc" choice:"desc" choice:"asc" description:"Sort by scrap time"`
	Watch    bool   `short:"w" long:"watch" description:"Read search input lines from stdin; '/rm <newsId>' unscraps"`
	Refresh  bool   `long:"refresh" description:"Bypass the cached list"`
}

func (c *scrapsCommand) Execute(_ []string) error {
	if err := c.app.setup(); err != nil {
		return err
	}
	viewer, err := c.app.viewer()
	if err != nil {
		return err
	}
	sort, err := scrapUC.ParseSortOrder(c.Sort)
	if err != nil {
		return err
	}

	items, err := c.app.scraps.List(c.app.ctx, viewer, c.Refresh)
	if err != nil {
		return err
	}
	catalog := config.DefaultCategoryCatalog()

	if !c.Watch {
		q := scrapUC.Query{Category: c.Category, Search: c.Query, Sort: sort}
		filtered := scrapUC.Compute(items, q)
		c.app.printView(scrapUC.View{
			Items:       filtered,
			Categories:  scrapUC.Categories(items, catalog),
			EmptyReason: scrapUC.EmptyReasonFor(len(items), len(filtered)),
			Query:       q,
		})
		return nil
	}
	return c.watch(viewer, items, sort, catalog)
}

// watch applies every stdin line as a search through the debounced browser.
func (c *scrapsCommand) watch(viewer entity.Viewer, items []entity.ScrapRecord, sort scrapUC.SortOrder, catalog *config.CategoryCatalog) error {
	b := scrapUC.NewBrowser(catalog, scrapUC.DefaultSearchDebounce)
	defer b.Close()

	b.SetItems(items)
	b.SetSort(sort)
	b.SetCategory(c.Category)
	b.Subscribe(c.app.printView)
	c.app.printView(b.View())

	scanner := bufio.NewScanner(c.app.in)
	for scanner.Scan() {
		line := scanner.Text()
		if newsID, ok := strings.CutPrefix(line, "/rm "); ok {
			newsID = strings.TrimSpace(newsID)
			b.Flush()
			if err := c.app.scraps.Unscrap(c.app.ctx, viewer, newsID); err != nil {
				fmt.Fprintln(c.app.errOut, "unscrap:", err)
				continue
			}
			b.Remove(newsID)
			continue
		}
		b.SetSearch(line)
	}
	b.Flush()
	return scanner.Err()
}

func (a *app) printView(v scrapUC.View) {
	catalog := config.DefaultCategoryCatalog()
	a.printf("--- %d scraps (category=%q q=%q sort=%s)\n", len(v.Items), v.Query.Category, v.Query.Search, v.Query.Sort)
	if v.EmptyReason != entity.EmptyReasonNone {
		a.printf("%s\n", v.EmptyReason.Message())
		return
	}
	for _, it := range v.Items {
		when := "-"
		if it.ScrapedAt != nil {
			when = it.ScrapedAt.In(a.locationOrLocal()).Format("2006-01-02 15:04")
		}
		label := catalog.Label(it.Category)
		a.printf("%-8s %-16s %-8s %s\n", it.NewsID, when, label, it.Title)
		if preview := summary.Preview(it.Summary); preview != "" {
			a.printf("         %s\n", preview)
		}
	}
}

func (a *app) locationOrLocal() *time.Location {
	if a.location != nil {
		return a.location
	}
	return time.Local
}

/* ───────── unscrap ───────── */

type unscrapCommand struct {
	app  *app
	Args struct {
		NewsID string `positional-arg-name:"news-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *unscrapCommand) Execute(_ []string) error {
	if err := c.app.setup(); err != nil {
		return err
	}
	viewer, err := c.app.viewer()
	if err != nil {
		return err
	}
	if err := c.app.scraps.Unscrap(c.app.ctx, viewer, c.Args.NewsID); err != nil {
		return err
	}
	c.app.printf("unscrapped %s\n", c.Args.NewsID)
	return nil
}

/* ───────── briefing ───────── */

type briefTextCommand struct {
	app  *app
	Args struct {
		Text []string `positional-arg-name:"text"`
	} `positional-args:"yes"`
}

func (c *briefTextCommand) Execute(_ []string) error {
	if err := c.app.setup(); err != nil {
		return err
	}
	viewer, err := c.app.viewer()
	if err != nil {
		return err
	}

	text := strings.Join(c.Args.Text, " ")
	if text == "" {
		b, err := io.ReadAll(c.app.in)
		if err != nil {
			return err
		}
		text = string(b)
	}

	out, err := c.app.brief.SubmitText(c.app.ctx, viewer, text)
	return c.app.printOutcome(out, err, briefUC.ChannelText)
}

type briefVoiceCommand struct {
	app  *app
	Args struct {
		File string `positional-arg-name:"recording" required:"yes"`
	} `positional-args:"yes"`
}

func (c *briefVoiceCommand) Execute(_ []string) error {
	if err := c.app.setup(); err != nil {
		return err
	}
	viewer, err := c.app.viewer()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Args.File)
	if err != nil {
		return err
	}
	out, err := c.app.brief.SubmitVoice(c.app.ctx, viewer, briefUC.Audio{Data: data, Filename: filepath.Base(c.Args.File)})
	return c.app.printOutcome(out, err, briefUC.ChannelVoice)
}

// printOutcome shows the outcome text, or the user-facing error text.
// A rejected outcome is reported as an error after printing.
func (a *app) printOutcome(out briefUC.Outcome, err error, ch briefUC.Channel) error {
	if err != nil {
		if msg := briefUC.UserMessage(err, ch); msg != "" {
			a.printf("%s\n", msg)
		}
		return err
	}
	a.printf("%s\n", out.Text)
	if out.IsError() {
		return errors.New("briefing request was rejected")
	}
	return nil
}

type schedulesCommand struct {
	app *app
}

func (c *schedulesCommand) Execute(_ []string) error {
	if err := c.app.setup(); err != nil {
		return err
	}
	viewer, err := c.app.viewer()
	if err != nil {
		return err
	}
	schedules, err := c.app.brief.Schedules(c.app.ctx, viewer)
	if err != nil {
		return err
	}
	if len(schedules) == 0 {
		c.app.printf("no schedules\n")
		return nil
	}
	for _, s := range schedules {
		c.app.printf("%-6d %-10s %s\n", s.ID, s.Status,
			briefUC.FormatTimestamp(s.ScheduledAt, c.app.brief.Location(), c.app.brief.Lang()))
	}
	return nil
}

/* ───────── token ───────── */

type tokenCommand struct {
	app *app
	TTL time.Duration `long:"ttl" default:"24h" description:"Token lifetime"`
}

func (c *tokenCommand) Execute(_ []string) error {
	viewer, err := c.app.viewer()
	if err != nil {
		return err
	}
	secret, err := auth.LoadSecret()
	if err != nil {
		return err
	}
	tok, err := auth.IssueToken(secret, viewer.MemberID, c.TTL)
	if err != nil {
		return err
	}
	c.app.printf("%s\n", tok)
	return nil
}
