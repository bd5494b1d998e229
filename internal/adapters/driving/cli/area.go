package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

var (
	areaName        string
	areaDescription string
)

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Manage organisational areas",
	Long: `Areas are the organisational units tickets may declare.
When at least one area exists, tickets naming an unknown area are rejected.`,
}

var areaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List areas",
	Args:  cobra.NoArgs,
	RunE:  runAreaList,
}

var areaAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an area",
	Args:  cobra.ExactArgs(1),
	RunE:  runAreaAdd,
}

var areaUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename an area or change its description",
	Args:  cobra.ExactArgs(1),
	RunE:  runAreaUpdate,
}

var areaDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an area",
	Args:  cobra.ExactArgs(1),
	RunE:  runAreaDelete,
}

var areaStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show area statistics",
	Args:  cobra.NoArgs,
	RunE:  runAreaStats,
}

func init() {
	areaAddCmd.Flags().StringVarP(&areaDescription, "description", "d", "", "area description")
	areaUpdateCmd.Flags().StringVar(&areaName, "name", "", "new area name")
	areaUpdateCmd.Flags().StringVarP(&areaDescription, "description", "d", "", "new description")

	areaCmd.AddCommand(areaListCmd)
	areaCmd.AddCommand(areaAddCmd)
	areaCmd.AddCommand(areaUpdateCmd)
	areaCmd.AddCommand(areaDeleteCmd)
	areaCmd.AddCommand(areaStatsCmd)
	rootCmd.AddCommand(areaCmd)
}

func requireAreaService() error {
	if areaService == nil {
		return errors.New("area service not configured")
	}
	return nil
}

func runAreaList(cmd *cobra.Command, _ []string) error {
	if err := requireAreaService(); err != nil {
		return err
	}

	areas := areaService.List()
	if len(areas) == 0 {
		cmd.Println("No areas configured.")
		return nil
	}

	st := stylesFor(cmd.OutOrStdout())
	for _, a := range areas {
		if a.Description == "" {
			cmd.Printf("%s  %s\n", st.header.Render(a.ID), a.Name)
			continue
		}
		cmd.Printf("%s  %s %s\n", st.header.Render(a.ID), a.Name, st.muted.Render("- "+a.Description))
	}
	return nil
}

func runAreaAdd(cmd *cobra.Command, args []string) error {
	if err := requireAreaService(); err != nil {
		return err
	}

	area, err := areaService.Add(cmd.Context(), args[0], areaDescription)
	if err != nil {
		return fmt.Errorf("failed to add area: %w", err)
	}
	cmd.Printf("Added area %s (%s)\n", area.ID, area.Name)
	return nil
}

func runAreaUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAreaService(); err != nil {
		return err
	}

	var update domain.AreaUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &areaName
	}
	if cmd.Flags().Changed("description") {
		update.Description = &areaDescription
	}
	if update.Name == nil && update.Description == nil {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	area, err := areaService.Update(cmd.Context(), args[0], update)
	if err != nil {
		return fmt.Errorf("failed to update area: %w", err)
	}
	cmd.Printf("Updated area %s (%s)\n", area.ID, area.Name)
	return nil
}

func runAreaDelete(cmd *cobra.Command, args []string) error {
	if err := requireAreaService(); err != nil {
		return err
	}
	if err := areaService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	cmd.Printf("Deleted area %s\n", args[0])
	return nil
}

func runAreaStats(cmd *cobra.Command, _ []string) error {
	if err := requireAreaService(); err != nil {
		return err
	}

	stats := areaService.Statistics()
	cmd.Printf("Areas: %d\n", stats.Total)
	for _, name := range stats.Names {
		cmd.Printf("  - %s\n", name)
	}
	return nil
}
