// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/noxera-service/internal/types"
	"github.com/canonical/noxera-service/pkg/features"
	"github.com/canonical/noxera-service/pkg/tenant"
)

const adminTenantsPath = "/api/v0/admin/tenants"

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
}

var (
	createSlug     string
	createPlanID   string
	createPlanTier string
	createSeats    int32
)

var createTenantCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new tenant in TRIAL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"name":     args[0],
			"slug":     createSlug,
			"planId":   createPlanID,
			"planTier": createPlanTier,
		}
		if cmd.Flags().Changed("seats") {
			body["seatsLimit"] = createSeats
		}

		t := new(types.Tenant)
		if err := getClient().do(cmd.Context(), http.MethodPost, adminTenantsPath, body, t); err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tenant created: %s (ID: %s, slug: %s)\n", t.Name, t.ID, t.Slug)
		return nil
	},
}

var (
	listQuery    string
	listStatus   string
	listPlanTier string
	listPage     int64
	listPageSize int64
)

var listTenantsCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if listQuery != "" {
			q.Set("q", listQuery)
		}
		if listStatus != "" {
			q.Set("status", listStatus)
		}
		if listPlanTier != "" {
			q.Set("planTier", listPlanTier)
		}
		q.Set("page", strconv.FormatInt(listPage, 10))
		q.Set("pageSize", strconv.FormatInt(listPageSize, 10))

		page := new(types.Page[*types.Tenant])
		if err := getClient().do(cmd.Context(), http.MethodGet, adminTenantsPath+"?"+q.Encode(), nil, page); err != nil {
			return fmt.Errorf("failed to list tenants: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG\tSTATUS\tPLAN\tCREATED_AT")
		for _, t := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Slug, t.Status, t.PlanTier, t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
		}
		w.Flush()

		fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d of %d tenants\n", page.Page, len(page.Items), page.Total)
		return nil
	},
}

var getTenantCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a tenant and its effective features",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var detail json.RawMessage
		if err := getClient().do(cmd.Context(), http.MethodGet, adminTenantsPath+"/"+url.PathEscape(args[0]), nil, &detail); err != nil {
			return fmt.Errorf("failed to get tenant: %w", err)
		}

		return printJSON(cmd, detail)
	},
}

var statusTenantCmd = &cobra.Command{
	Use:       "status [id] [status]",
	Short:     "Change the lifecycle status of a tenant",
	Args:      cobra.ExactArgs(2),
	ValidArgs: statusNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		change := new(tenant.StatusChange)
		body := map[string]string{"status": args[1]}

		if err := getClient().do(cmd.Context(), http.MethodPatch, adminTenantsPath+"/"+url.PathEscape(args[0])+"/status", body, change); err != nil {
			return fmt.Errorf("failed to change tenant status: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tenant %s is now %s\n", change.TenantID, change.Status)
		return nil
	},
}

var overridesFile string

var featuresTenantCmd = &cobra.Command{
	Use:   "features [id]",
	Short: "Show the feature entitlements of a tenant, or replace its overrides with --set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := adminTenantsPath + "/" + url.PathEscape(args[0]) + "/features"
		entitlements := new(features.Entitlements)

		if overridesFile == "" {
			if err := getClient().do(cmd.Context(), http.MethodGet, path, nil, entitlements); err != nil {
				return fmt.Errorf("failed to get features: %w", err)
			}
			return printJSON(cmd, entitlements)
		}

		raw, err := os.ReadFile(overridesFile)
		if err != nil {
			return fmt.Errorf("failed to read overrides: %w", err)
		}

		overrides, err := features.Parse(raw)
		if err != nil || !overrides.IsMap() {
			return fmt.Errorf("overrides in %s must be a JSON object", overridesFile)
		}

		if err := getClient().do(cmd.Context(), http.MethodPut, path+"/overrides", overrides, entitlements); err != nil {
			return fmt.Errorf("failed to set overrides: %w", err)
		}

		return printJSON(cmd, entitlements)
	},
}

func statusNames() []string {
	names := make([]string, 0, len(types.TenantStatuses))
	for _, s := range types.TenantStatuses {
		names = append(names, string(s))
	}
	return names
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(tenantCmd)
	tenantCmd.AddCommand(createTenantCmd)
	tenantCmd.AddCommand(listTenantsCmd)
	tenantCmd.AddCommand(getTenantCmd)
	tenantCmd.AddCommand(statusTenantCmd)
	tenantCmd.AddCommand(featuresTenantCmd)

	createTenantCmd.Flags().StringVar(&createSlug, "slug", "", "Slug, generated from the name when empty")
	createTenantCmd.Flags().StringVar(&createPlanID, "plan-id", "", "Plan ID")
	createTenantCmd.Flags().StringVar(&createPlanTier, "plan-tier", "", "Plan tier, the oldest plan of the tier is used")
	createTenantCmd.Flags().Int32Var(&createSeats, "seats", 0, "Seats limit")

	listTenantsCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search name, slug or ID")
	listTenantsCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status")
	listTenantsCmd.Flags().StringVar(&listPlanTier, "plan-tier", "", "Filter by plan tier")
	listTenantsCmd.Flags().Int64Var(&listPage, "page", 1, "Page number")
	listTenantsCmd.Flags().Int64Var(&listPageSize, "page-size", 20, "Page size (max 100)")

	featuresTenantCmd.Flags().StringVar(&overridesFile, "set", "", "Path to a JSON object replacing the tenant overrides")
}
