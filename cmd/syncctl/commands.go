package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"salespipeline/internal/adapter/http/routes"
	"salespipeline/internal/domain/entities"
	"salespipeline/internal/infrastructure/bootstrap"
	"salespipeline/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

// newContainer is replaced in tests.
var newContainer = func(ctx context.Context) (*bootstrap.Container, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *bootstrap.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, webhooks and the contract sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)
		return withContainer(cmd, routes.Serve)
	},
}

// --- reconcile ---

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Expire overdue contracts and replay finished envelopes",
	Long: `Walk every contract still out for signature once.

Contracts past their expiry are expired. The others are checked against the
e-signature provider: completed envelopes go through the same path as the
completion webhook, declined and voided ones are recorded as such.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
			report, err := c.Reconcile.Reconcile(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		})
	},
}

// --- deal-sync ---

var dealSyncCmd = &cobra.Command{
	Use:   "deal-sync [quote-request-id]",
	Short: "Force a CRM sync",
	Long: `Force a CRM sync.

Examples:
  syncctl deal-sync 6f1c...            push a quote request as contact + deal
  syncctl deal-sync --deal 123456      pull a deal's stage and amount
  syncctl deal-sync --quote 9a2e...    push a quote's total to its deal`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dealID, _ := cmd.Flags().GetString("deal")
		quoteID, _ := cmd.Flags().GetString("quote")
		dealID, quoteID = strings.TrimSpace(dealID), strings.TrimSpace(quoteID)

		set := 0
		for _, v := range []string{dealID, quoteID} {
			if v != "" {
				set++
			}
		}
		if len(args) == 1 {
			set++
		}
		if set != 1 {
			return fmt.Errorf("exactly one of a quote request id, --deal or --quote is required")
		}

		return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
			switch {
			case dealID != "":
				res, err := c.DealSync.SyncDealFromCRM(ctx, dealID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			case quoteID != "":
				q, err := c.DealSync.SyncQuoteAmountToDeal(ctx, quoteID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), q)
			default:
				qr, err := c.DealSync.SyncQuoteRequestToDeal(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), qr)
			}
		})
	},
}

// --- audit ---

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Print recent sync audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		id, _ := cmd.Flags().GetString("id")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := entities.AuditFilter{EntityID: strings.TrimSpace(id), Limit: limit}
		if kind != "" {
			k, ok := entities.ParseEntityKind(kind)
			if !ok {
				return fmt.Errorf("--kind must be quote_request, quote or contract")
			}
			filter.EntityKind = k
		}
		return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
			entries, err := c.Audit.List(ctx, filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		})
	},
}

func init() {
	dealSyncCmd.Flags().String("deal", "", "CRM deal id to pull")
	dealSyncCmd.Flags().String("quote", "", "quote id whose total is pushed to its deal")

	auditCmd.Flags().String("kind", "", "entity kind: quote_request, quote or contract")
	auditCmd.Flags().String("id", "", "entity id")
	auditCmd.Flags().Int("limit", 50, "max entries")
}
