// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

type organizationPayload struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	SubscriptionStatus string    `json:"subscription_status"`
	Enabled            bool      `json:"enabled"`
	CreatedAt          time.Time `json:"created_at"`
}

var organizationCmd = &cobra.Command{
	Use:   "organization",
	Short: "Manage organizations",
}

var createOrganizationCmd = &cobra.Command{
	Use:   "create [name] [slug]",
	Short: "Create a new organization",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAdminClient(httpEndpoint, adminToken)

		var org organizationPayload
		err := client.do(context.Background(), http.MethodPost, "/api/admin/organizations", map[string]string{
			"name": args[0],
			"slug": args[1],
		}, &org)
		if err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		fmt.Printf("Organization created: %s (ID: %s)\n", org.Name, org.ID)
		return nil
	},
}

var deleteOrganizationCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAdminClient(httpEndpoint, adminToken)

		err := client.do(context.Background(), http.MethodDelete, "/api/admin/organizations/"+args[0], nil, nil)
		if err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}

		fmt.Printf("Organization deleted: %s\n", args[0])
		return nil
	},
}

var listOrganizationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAdminClient(httpEndpoint, adminToken)

		var orgs []organizationPayload
		err := client.do(context.Background(), http.MethodGet, "/api/admin/organizations", nil, &orgs)
		if err != nil {
			return fmt.Errorf("failed to list organizations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG\tENABLED\tCREATED_AT")
		for _, o := range orgs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", o.ID, o.Name, o.Slug, o.Enabled, o.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
		return nil
	},
}

var activateOrganizationCmd = &cobra.Command{
	Use:   "activate [id]",
	Short: "Enable an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOrganizationStatus(args[0], true)
	},
}

var deactivateOrganizationCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Disable an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOrganizationStatus(args[0], false)
	},
}

func setOrganizationStatus(id string, enabled bool) error {
	client := newAdminClient(httpEndpoint, adminToken)

	err := client.do(context.Background(), http.MethodPost, "/api/admin/organizations/"+id+"/status", map[string]bool{
		"enabled": enabled,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to set organization status: %w", err)
	}

	state := "deactivated"
	if enabled {
		state = "activated"
	}
	fmt.Printf("Organization %s: %s\n", state, id)
	return nil
}

var updateOrganizationCmd = &cobra.Command{
	Use:   "update [id] [name]",
	Short: "Update an organization's name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAdminClient(httpEndpoint, adminToken)

		err := client.do(context.Background(), http.MethodPatch, "/api/admin/organizations/"+args[0], map[string]any{
			"name":         args[1],
			"update_paths": []string{"name"},
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to update organization: %w", err)
		}

		fmt.Printf("Organization updated: %s\n", args[0])
		return nil
	},
}

var provisionRole string

var provisionUserCmd = &cobra.Command{
	Use:   "provision-user [organization-id] [email]",
	Short: "Provision a user into an organization",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAdminClient(httpEndpoint, adminToken)

		err := client.do(context.Background(), http.MethodPost, "/api/admin/organizations/"+args[0]+"/users", map[string]string{
			"email": args[1],
			"role":  provisionRole,
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to provision user: %w", err)
		}

		fmt.Printf("User %s provisioned into organization %s as %s\n", args[1], args[0], provisionRole)
		return nil
	},
}

var userOrganizationsCmd = &cobra.Command{
	Use:   "user-organizations [user-id]",
	Short: "List the organizations a user belongs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAdminClient(httpEndpoint, adminToken)

		var orgs []organizationPayload
		err := client.do(context.Background(), http.MethodGet, "/api/admin/users/"+args[0]+"/organizations", nil, &orgs)
		if err != nil {
			return fmt.Errorf("failed to list user organizations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG\tENABLED")
		for _, o := range orgs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", o.ID, o.Name, o.Slug, o.Enabled)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(organizationCmd)
	organizationCmd.AddCommand(createOrganizationCmd)
	organizationCmd.AddCommand(deleteOrganizationCmd)
	organizationCmd.AddCommand(listOrganizationsCmd)
	organizationCmd.AddCommand(activateOrganizationCmd)
	organizationCmd.AddCommand(deactivateOrganizationCmd)
	organizationCmd.AddCommand(updateOrganizationCmd)
	organizationCmd.AddCommand(provisionUserCmd)
	organizationCmd.AddCommand(userOrganizationsCmd)

	provisionUserCmd.Flags().StringVar(&provisionRole, "role", "member", "Role for the provisioned user (owner, admin, member)")
}
