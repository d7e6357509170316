package cmd

import (
	"github.com/spf13/cobra"
)

// clientsCmd lists the user's clients.
var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := ctx.Session.Clients().All(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.Formatter.IsJSON() {
			names := make([]string, 0, len(clients))
			for _, c := range clients {
				names = append(names, c.Name())
			}
			return ctx.Formatter.JSON(names)
		}
		for _, c := range clients {
			ctx.Formatter.Println(c.Name())
		}
		return nil
	},
}

// workspacesCmd lists the user's workspaces.
var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaces, err := ctx.Session.Workspaces().All(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.Formatter.IsJSON() {
			names := make([]string, 0, len(workspaces))
			for _, w := range workspaces {
				names = append(names, w.Name())
			}
			return ctx.Formatter.JSON(names)
		}
		for _, w := range workspaces {
			ctx.Formatter.Printf(":%s\n", w.Name())
		}
		return nil
	},
}

// Projects command flags.
var projectsFlagWorkspace string

// projectsCmd lists the projects of a workspace, with client names where a
// project has one.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects := ctx.Session.Projects()
		if projectsFlagWorkspace != "" {
			if err := projects.Fetch(cmd.Context(), projectsFlagWorkspace); err != nil {
				return err
			}
		}
		items, err := projects.All(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.Formatter.IsJSON() {
			names := make([]string, 0, len(items))
			for _, p := range items {
				names = append(names, p.Name())
			}
			return ctx.Formatter.JSON(names)
		}

		workspaceName := ""
		if workspace := projects.Workspace(); workspace != nil {
			workspaceName = workspace.Name()
		}
		for _, p := range items {
			clientName := ""
			if cid, ok := p.ClientID(); ok {
				if client, err := ctx.Session.Clients().FindByID(cmd.Context(), cid); err == nil {
					clientName = " - " + client.Name()
				}
			}
			ctx.Formatter.Printf(":%s @%s%s\n", workspaceName, p.Name(), clientName)
		}
		return nil
	},
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsFlagWorkspace, "workspace", "w", "", "Workspace name")
}
