package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randytsao24/swipemap/internal/config"
	"github.com/randytsao24/swipemap/internal/dataset"
	"github.com/randytsao24/swipemap/internal/explorer"
	"github.com/randytsao24/swipemap/internal/models"
	"github.com/randytsao24/swipemap/internal/swipes"
)

var (
	reportPeriod int
	reportFare   string
	reportLine   string
	reportLimit  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print bands and station rankings for one selection",
	Long: `Prints the percentile band edges, the top and bottom stations, the fare
table and the share of swipes by fare type for the chosen period, MetroCard
type and line.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportPeriod, "period", 1, "fare period, 1-based")
	reportCmd.Flags().StringVar(&reportFare, "fare", "ff", "MetroCard type (ff, 7d or 30d)")
	reportCmd.Flags().StringVar(&reportLine, "line", swipes.AllLines, "subway line filter")
	reportCmd.Flags().IntVar(&reportLimit, "limit", explorer.DefaultLimit, "rows in the top and bottom tables")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	cfg := config.Load()

	fare, err := swipes.ParseFareType(reportFare)
	if err != nil {
		return err
	}

	m, periods, err := loadDataset(getManifestPath(cfg))
	if err != nil {
		return err
	}

	ex := explorer.New(periods, 1)
	view, err := ex.View(explorer.Selection{
		Period: reportPeriod - 1,
		Fare:   fare,
		Line:   reportLine,
		Limit:  reportLimit,
	})
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), m.Title, ex, view)
}

func writeReport(out io.Writer, title string, ex *explorer.Explorer, view explorer.View) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	var swipeTotal int64
	for _, b := range view.Bands {
		for _, s := range b.Stations {
			swipeTotal += s.Total()
		}
	}

	fmt.Fprintln(tw, title)
	fmt.Fprintf(tw, "%s, %s, line %s: %d stations, %s swipes\n\n",
		view.PeriodLabel, view.FareLabel, view.Line, view.Count, humanize.Comma(swipeTotal))

	fmt.Fprintln(tw, "Band\tColor\tFrom\tTo\tStations")
	for _, b := range view.Bands {
		fmt.Fprintf(tw, "%d\t%s\t%.2f%%\t%.2f%%\t%d\n", b.Index+1, b.Color, b.Low, b.High, len(b.Stations))
	}

	writeRanking(tw, fmt.Sprintf("Top %d Stations", view.Limit), view.Top)
	writeRanking(tw, fmt.Sprintf("Bottom %d Stations", view.Limit), view.Bottom)

	fmt.Fprintln(tw, "\nFare Periods")
	fmt.Fprintln(tw, "Period\tStart Date\tEnd Date\tPrice\t% Change")
	for _, h := range ex.FareHikes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.Label, h.StartString(), h.EndString(), h.PriceString(), h.ChangeString())
	}

	fmt.Fprintln(tw, "\n% of Total Swipes")
	fmt.Fprintln(tw, "Period\tAs Of\tFull Fare\t7D UNL\t30D UNL\tSwipes")
	periods := ex.Periods()
	for i, s := range ex.Shares() {
		fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%.2f%%\t%.2f%%\t%s\n",
			s.Label, s.AsOf.Format("1/2/06"), s.FullFare, s.SevenDay, s.ThirtyDay,
			humanize.Comma(periodSwipes(periods, i)))
	}

	return tw.Flush()
}

func writeRanking(tw io.Writer, title string, rows []models.RankedStation) {
	fmt.Fprintf(tw, "\n%s\n", title)
	fmt.Fprintln(tw, "Rank\tStation\tLines\t%")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f%%\n", r.Rank, r.Station, r.Lines, r.Percent)
	}
}

func periodSwipes(periods []dataset.Period, i int) int64 {
	if i >= len(periods) {
		return 0
	}
	var n int64
	for _, s := range periods[i].Stations {
		n += s.Total()
	}
	return n
}
