package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/dex/internal/adapter/source/pokeapi"
	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/library"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print one entry's details and encounters",
		Example: `  dex show 25
  dex show '#001'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runShow(cmd, id)
		},
	}
}

// parseID accepts "25", "025" or "#025"
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func (a *app) runShow(cmd *cobra.Command, id int) error {
	entry := domain.CatalogEntry{
		ID:       id,
		ImageURL: pokeapi.SpriteURL(a.cfg.API.SpriteBaseURL, id),
	}
	view := library.NewDetailView(a.services().Repository, entry, a.logger)
	view.Load(cmd.Context())
	if err := view.Err(); err != nil {
		return err
	}
	d := view.Detail()
	if d == nil {
		return cmd.Context().Err()
	}

	writeDetail(cmd.OutOrStdout(), d, view.Encounters())
	return nil
}

func writeDetail(w io.Writer, d *domain.Detail, encounters []domain.Encounter) {
	fmt.Fprintf(w, "%s #%03d\n", d.DisplayName(), d.ID)
	fmt.Fprintf(w, "  %-12s %s\n", "Types", strings.Join(d.TypeNames(), ", "))
	fmt.Fprintf(w, "  %-12s %s\n", "Height", d.FormattedHeight())
	fmt.Fprintf(w, "  %-12s %s\n", "Weight", d.FormattedWeight())
	if d.BaseExperience != nil {
		fmt.Fprintf(w, "  %-12s %d\n", "Base exp", *d.BaseExperience)
	}

	abilities := make([]string, 0, len(d.Abilities))
	for _, a := range d.Abilities {
		name := a.Ability.Name
		if a.IsHidden {
			name += " (hidden)"
		}
		abilities = append(abilities, name)
	}
	fmt.Fprintf(w, "  %-12s %s\n", "Abilities", strings.Join(abilities, ", "))

	fmt.Fprintln(w, "\nStats")
	for _, s := range d.Stats {
		fmt.Fprintf(w, "  %-16s %3d\n", s.Stat.Name, s.BaseStat)
	}
	fmt.Fprintf(w, "  %-16s %3d\n", "total", d.TotalBaseStats())

	fmt.Fprintln(w, "\nEncounters")
	if len(encounters) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, e := range encounters {
		fmt.Fprintf(w, "  %s\n", e.LocationArea.Name)
		for _, v := range e.VersionDetails {
			fmt.Fprintf(w, "    %-12s %3d%%\n", v.Version.Name, v.MaxChance)
			for _, detail := range v.EncounterDetails {
				fmt.Fprintf(w, "      %s lv %s, %d%%\n", detail.Method.Name, detail.LevelRange(), detail.Chance)
			}
		}
	}
}
