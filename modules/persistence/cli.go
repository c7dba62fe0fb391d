package persistence

import (
	"io"
	"os"

	"github.com/lkarlslund/logonhound/modules/cli"
	"github.com/lkarlslund/logonhound/modules/tables"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/lkarlslund/logonhound/modules/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	sidsCmd = &cobra.Command{
		Use:   "sids",
		Short: "Maintain the stored computer SID index",
	}

	importCmd = &cobra.Command{
		Use:   "import [csv file]",
		Short: "Import host names and SIDs from a CSV file into the SID store",
		Args:  cobra.ExactArgs(1),
	}
	replace      = importCmd.Flags().Bool("replace", false, "Remove all stored SIDs before importing")
	hostcolumn   = importCmd.Flags().String("hostcolumn", tables.DefaultColumns().Host, "Column with the host name")
	sidcolumn    = importCmd.Flags().String("sidcolumn", tables.DefaultColumns().SID, "Column with the computer SID")
	duplicatesid = importCmd.Flags().String("duplicatesids", tables.DuplicateError.String(), "What to do when a host is listed with different SIDs (error, first, last)")

	getCmd = &cobra.Command{
		Use:   "get [host]...",
		Short: "Show the stored SID of one or more hosts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  getSIDs,
	}

	deleteCmd = &cobra.Command{
		Use:   "delete [host]...",
		Short: "Remove hosts from the SID store",
		Args:  cobra.MinimumNArgs(1),
		RunE:  deleteSIDs,
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps the SID store in JSON",
	}
	output = dumpCmd.Flags().String("output", "-", "Output file for dump, - is stdout")

	restoreCmd = &cobra.Command{
		Use:   "restore",
		Short: "Restores the SID store from a JSON dump, replacing what is there",
	}
	input = restoreCmd.Flags().String("input", "sids-dump.json", "Input file to restore")
)

func init() {
	importCmd.RunE = importSIDs
	dumpCmd.RunE = dump
	restoreCmd.RunE = restore
	cli.Root.AddCommand(sidsCmd)
	sidsCmd.AddCommand(importCmd, getCmd, deleteCmd, dumpCmd, restoreCmd)
}

func importSIDs(cmd *cobra.Command, args []string) error {
	policy, err := tables.ParseDuplicatePolicy(*duplicatesid)
	if err != nil {
		return err
	}
	m := tables.NewMerger()
	m.Columns.Host = *hostcolumn
	m.Columns.SID = *sidcolumn
	m.Duplicates = policy

	t, err := tables.FileLoader{Path: args[0]}.Load()
	if err != nil {
		return err
	}

	store, err := IdentityStore()
	if err != nil {
		return err
	}
	defer Close()
	_, err = ImportIdentities(store, t, m, *replace)
	return err
}

func getSIDs(cmd *cobra.Command, args []string) error {
	store, err := IdentityStore()
	if err != nil {
		return err
	}
	defer Close()
	return LookupIdentities(store, args, os.Stdout)
}

func deleteSIDs(cmd *cobra.Command, args []string) error {
	store, err := IdentityStore()
	if err != nil {
		return err
	}
	defer Close()
	return DeleteIdentities(store, args)
}

func dump(cmd *cobra.Command, args []string) error {
	store, err := IdentityStore()
	if err != nil {
		return err
	}
	defer Close()
	identities, err := store.List()
	if err != nil {
		return errors.Wrap(err, "could not read SID store")
	}

	var w io.Writer = os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			return errors.Wrap(err, "could not open output file")
		}
		defer f.Close()
		w = f
	}
	if err = util.WriteJSON(w, identities); err != nil {
		return err
	}
	ui.Info().Msgf("Dumped %v computer SIDs", len(identities))
	return nil
}

func restore(cmd *cobra.Command, args []string) error {
	f, err := os.Open(*input)
	if err != nil {
		return errors.Wrap(err, "could not open dump")
	}
	defer f.Close()

	var identities []Identity
	if err = util.ReadJSON(f, &identities); err != nil {
		return errors.Wrapf(err, "could not parse %v", *input)
	}

	store, err := IdentityStore()
	if err != nil {
		return err
	}
	defer Close()
	if err = store.Clear(); err != nil {
		return err
	}
	if err = store.PutMany(identities); err != nil {
		return err
	}
	ui.Info().Msgf("Restored %v computer SIDs from %v", len(identities), *input)
	return nil
}
