package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chalet/internal/app/dto"
	availabilityapp "chalet/internal/app/handlers/availability"
	pricingapp "chalet/internal/app/handlers/pricing"
	"chalet/internal/app/queries"
	"chalet/internal/domain/shared/daterange"
)

func quoteCmd(rt *runtime) *cobra.Command {
	var fromStr, toStr string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a stay, both days included",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := daterange.Parse(fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			var to = from
			if toStr != "" {
				if to, err = daterange.Parse(toStr); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}
			app, err := buildApplication(cmd.Context(), rt.cfg, rt.logger, false)
			if err != nil {
				return err
			}
			defer app.close(context.Background())
			q, err := queries.Ask[pricingapp.GetQuoteQuery, dto.Quote](cmd.Context(), app.queries, pricingapp.GetQuoteQuery{From: from, To: to})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			return writeQuote(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().StringVar(&fromStr, "from", "", "first night (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "last night (YYYY-MM-DD), defaults to --from")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func datesCmd(rt *runtime) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List blocked and booked days",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case "", "blocked", "booked":
			default:
				return fmt.Errorf("unknown --kind %q, want blocked or booked", kind)
			}
			app, err := buildApplication(cmd.Context(), rt.cfg, rt.logger, false)
			if err != nil {
				return err
			}
			defer app.close(context.Background())
			dates, err := queries.Ask[availabilityapp.ListUnavailableQuery, dto.UnavailableDates](cmd.Context(), app.queries, availabilityapp.ListUnavailableQuery{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if kind == "" || kind == "blocked" {
				for _, d := range dates.Blocked {
					fmt.Fprintf(out, "%s\tblocked\n", d)
				}
			}
			if kind == "" || kind == "booked" {
				for _, d := range dates.Booked {
					fmt.Fprintf(out, "%s\tbooked\n", d)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "blocked or booked; both when empty")
	return cmd
}

func priceCmd(rt *runtime) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show the price of one night and where it comes from",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := daterange.Parse(dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			app, err := buildApplication(cmd.Context(), rt.cfg, rt.logger, false)
			if err != nil {
				return err
			}
			defer app.close(context.Background())
			night, err := queries.Ask[pricingapp.GetNightPriceQuery, dto.NightPrice](cmd.Context(), app.queries, pricingapp.GetNightPriceQuery{Date: date})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d %s\t%s\n", night.Date, night.Price, night.Currency, night.Tier)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "night to price (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func writeQuote(w io.Writer, q dto.Quote) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range q.Nightly {
		fmt.Fprintf(tw, "%s\t%d %s\t%s\n", n.Date, n.Price, n.Currency, n.Tier)
	}
	fmt.Fprintf(tw, "nights\t%d\t\n", q.Nights)
	fmt.Fprintf(tw, "total\t%d %s\t\n", q.Total, q.Currency)
	for _, u := range q.Unavailable {
		fmt.Fprintf(tw, "unavailable\t%s\t%s\n", u.Date, u.Reason)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
