package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/services/statistics"
)

func printProfile(p *statistics.Profile) {
	fmt.Printf("\n%s  level %d  %d/%d XP to next  %d chips\n", p.Username, p.Level, p.XP, p.XP+p.XPToNext, p.Chips)
	fmt.Printf("Games %d  won %d (%.1f%%)  blackjacks %d  best balance %d\n",
		p.Stats.GamesPlayed, p.Stats.GamesWon, p.WinRate, p.Stats.Blackjacks, p.Stats.HighestBalance)

	fmt.Printf("Achievements %d/%d\n", p.Unlocked, len(p.Achievements))
	for _, a := range p.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Printf("  [%s] %s %s: %s\n", mark, a.Icon, a.Title, a.Description)
	}

	if len(p.Games) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nGAME\tROUNDS\tWINS\tLOSSES\tPUSHES\tNET")
	for _, game := range entities.GameTypes {
		s, ok := p.Games[game]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%+d\n", game, s.RoundsPlayed, s.Wins, s.Losses, s.Pushes, s.NetProfit())
	}
	w.Flush()
}

func printTransactions(txs []*entities.Transaction) {
	if len(txs) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nTYPE\tAMOUNT\tBALANCE\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%+d\t%d\t%s\n", tx.Type, tx.Amount, tx.BalanceAfter, tx.Description)
	}
	w.Flush()
}

func printLeaderboard(board *statistics.Leaderboard) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s leaderboard (page %d/%d)\n", board.Game, board.CurrentPage, board.TotalPages)
	fmt.Fprintln(w, "RANK\tACCOUNT\tROUNDS\tWIN%\tNET\t")
	for _, p := range board.Players {
		badge := ""
		if p.IsTopWinner {
			badge += "🏆"
		}
		if p.IsTopPlayer {
			badge += "🎲"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.1f\t%+d\t%s\n", p.Rank, p.AccountID, p.RoundsPlayed, p.WinRate, p.NetProfit(), badge)
	}
	w.Flush()
}

// printMetrics dumps the cardroyale counters from the default registry
func printMetrics() error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	fmt.Println()
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "cardroyale_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Printf("%s%s %g\n", mf.GetName(), labels, m.GetGauge().GetValue())
			}
		}
	}
	return nil
}
