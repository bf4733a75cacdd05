package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/render"
)

func newFrontCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "front",
		Short: "Print the front page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := o.stderrLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			// The listing is the live front page only, so cached stories
			// are not restored. Results are still written to the cache.
			rt, err := setup(o.cfg, log, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			if o.cfg.RequestTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, o.cfg.RequestTimeout)
				defer cancel()
			}
			if err := rt.store.LoadFrontPage(ctx); err != nil {
				return fmt.Errorf("loading front page: %w", err)
			}
			printFrontPage(cmd.OutOrStdout(), rt.store.FrontPage())
			return nil
		},
	}
}

func printFrontPage(w io.Writer, stories []model.Story) {
	for i, st := range stories {
		title := st.Title
		if d := render.Domain(st.URL); d != "" {
			title += " (" + d + ")"
		}
		fmt.Fprintf(w, "%3d. %s\n", i+1, title)

		meta := []string{fmt.Sprintf("%d points", st.Points)}
		if st.Author != "" {
			meta = append(meta, "by "+st.Author)
		}
		if ago := render.TimeAgo(st.CreatedAt); ago != "" {
			meta = append(meta, ago)
		}
		meta = append(meta, fmt.Sprintf("%d comments", st.NumComments), "id "+st.ID)
		fmt.Fprintf(w, "     %s\n", strings.Join(meta, " | "))
	}
}
