package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"opinfo/internal/operator/database"
)

func checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the operator databases and report broken MVNO filters",
		Long: `Load every configured operator database, print what was loaded and list the
MVNO filters whose regex does not compile. Such MVNOs can never match.

Exits non-zero when no database loads or any filter is broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd)
		},
	}
}

func runCheck(cmd *cobra.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	sets, err := env.source.Load(cmd.Context())
	if err != nil {
		return err
	}
	idx, err := database.Load(sets...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, set := range sets {
		mvnos := 0
		for _, mno := range set.MNOs {
			mvnos += len(mno.MVNOs)
		}
		fmt.Fprintf(out, "%s: %d MNOs, %d MVNOs, %d IMVNOs\n", set.Source, len(set.MNOs), mvnos, len(set.IMVNOs))
	}
	fmt.Fprintf(out, "total: %d MNOs, %d MVNOs\n", idx.Len(), idx.MVNOCount())
	if n := idx.IgnoredIMVNOs(); n > 0 {
		fmt.Fprintf(out, "ignored: %d international MVNOs\n", n)
	}

	issues := idx.FilterIssues()
	for _, issue := range issues {
		fmt.Fprintf(out, "broken filter: mno %s mvno %d filter %d regex %q: %v\n",
			mnoLabel(idx, issue.MNO), issue.MVNO, issue.Filter, issue.Regex, issue.Err)
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d MVNO filters do not compile", len(issues))
	}
	return nil
}

func mnoLabel(idx *database.Index, id database.MNOID) string {
	if mno := idx.MNO(id); mno != nil && mno.Data.UUID != nil {
		return *mno.Data.UUID
	}
	return fmt.Sprintf("#%d", id)
}
