package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/dex/internal/adapter/source/pokeapi"
	"github.com/mmcdole/dex/internal/tui"
)

type spriteOptions struct {
	output string
	print  bool
	width  int
}

func newSpriteCmd(a *app) *cobra.Command {
	var opts spriteOptions
	cmd := &cobra.Command{
		Use:   "sprite ID",
		Short: "Download an entry's sprite",
		Long: `Download an entry's sprite image.

The raw image is written to --output (default ID.png). With --print and no
--output the image is only drawn in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runSprite(cmd, id, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File to write the image to")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Draw the sprite in the terminal")
	cmd.Flags().IntVar(&opts.width, "width", 40, "Maximum width in columns for --print")

	return cmd
}

func (a *app) runSprite(cmd *cobra.Command, id int, opts spriteOptions) error {
	spriteURL := pokeapi.SpriteURL(a.cfg.API.SpriteBaseURL, id)
	img, err := a.services().Images.Load(cmd.Context(), spriteURL)
	if err != nil {
		return err
	}

	if opts.print {
		lines := tui.RenderHalfBlocks(img.Pixels, opts.width)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
		if opts.output == "" {
			return nil
		}
	}

	output := opts.output
	if output == "" {
		output = fmt.Sprintf("%d.%s", id, img.Format)
	}
	if err := os.WriteFile(output, img.Data, 0644); err != nil {
		return fmt.Errorf("failed to write sprite: %w", err)
	}

	a.logger.Debug("sprite written", "id", id, "path", output, "bytes", len(img.Data))
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(img.Data))
	return nil
}
