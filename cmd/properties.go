package main

import (
	"fmt"

	"github.com/arzan03/EstateHub/internal/services"
	"github.com/spf13/cobra"
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Inspect and repair stored listings",
}

var seedOwner string

var propertiesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample listings owned by an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(false)
		if err != nil {
			return err
		}
		defer s.Close()

		created, err := services.NewPropertyService(s.properties, s.users).SeedSamples(cmd.Context(), seedOwner)
		for _, p := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "added %s  %s (%s, %s)\n", p.ID.Hex(), p.Title, p.ListingType, p.PropertyType)
		}
		return err
	},
}

var propertiesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List every listing with its type, flagging unknown types",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(false)
		if err != nil {
			return err
		}
		defer s.Close()

		all, err := services.NewPropertyService(s.properties, s.users).AllProperties(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d properties\n", len(all))
		for i, p := range all {
			propertyType := p.PropertyType
			if propertyType == "" {
				propertyType = "MISSING"
			}
			fmt.Fprintf(out, "%3d. %s  %s  type=%s listing=%s\n", i+1, p.ID.Hex(), p.Title, propertyType, p.ListingType)
		}
		return nil
	},
}

var (
	fixDefault string
	fixDryRun  bool
)

var propertiesFixTypesCmd = &cobra.Command{
	Use:   "fix-types",
	Short: "Set a default type on listings whose type is missing or unknown",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(false)
		if err != nil {
			return err
		}
		defer s.Close()

		fixes, err := services.NewPropertyService(s.properties, s.users).FixPropertyTypes(cmd.Context(), fixDefault, fixDryRun)
		out := cmd.OutOrStdout()
		for _, fix := range fixes {
			fmt.Fprintf(out, "%s  %s: %q -> %q\n", fix.Property.ID.Hex(), fix.Property.Title, fix.OldType, fix.Property.PropertyType)
		}
		if err != nil {
			return err
		}
		if fixDryRun {
			fmt.Fprintf(out, "%d properties would be updated (dry run)\n", len(fixes))
		} else {
			fmt.Fprintf(out, "%d properties updated\n", len(fixes))
		}
		return nil
	},
}

var propertiesSetTypeCmd = &cobra.Command{
	Use:   "set-type <id> <type>",
	Short: "Force the type of one listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(false)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := services.NewPropertyService(s.properties, s.users).SetPropertyType(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: type=%s\n", p.ID.Hex(), p.Title, p.PropertyType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
	propertiesCmd.AddCommand(propertiesSeedCmd, propertiesCheckCmd, propertiesFixTypesCmd, propertiesSetTypeCmd)

	propertiesSeedCmd.Flags().StringVar(&seedOwner, "owner", "", "email of the user who will own the samples")
	_ = propertiesSeedCmd.MarkFlagRequired("owner")

	propertiesFixTypesCmd.Flags().StringVar(&fixDefault, "default", "house", "type assigned to listings with a missing or unknown type")
	propertiesFixTypesCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "report changes without writing them")
}
