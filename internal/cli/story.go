package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/render"
)

func newStoryCmd(o *options) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "story <id>",
		Short: "Print the comment thread of a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			log, err := o.stderrLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rt, err := setup(o.cfg, log, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.store.GetOrCreateStory(id)
			rt.store.RequestStoryComments(id)
			rt.store.Wait()

			st, _ := rt.store.GetStory(id)
			if st.Status == model.Failed {
				return fmt.Errorf("loading story %s: %w", id, st.LastErr)
			}
			printThread(cmd.OutOrStdout(), st, width)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "wrap comments at this many columns")
	return cmd
}

func printThread(w io.Writer, st model.Story, width int) {
	title := st.Title
	if title == "" {
		title = "Story " + st.ID
	}
	fmt.Fprintln(w, title)
	if d := render.Domain(st.URL); d != "" {
		fmt.Fprintln(w, d)
	}
	fmt.Fprintln(w, strings.Repeat("-", max(min(width, len(title)), 1)))

	if model.CountVisible(st.Comments) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}

	for _, c := range st.Comments {
		c.Walk(0, func(c model.Comment, depth int) bool {
			if !c.Visible() {
				return false
			}
			indent := strings.Repeat("  ", min(depth, 15))
			header := c.Author
			if ago := render.TimeAgo(c.CreatedAt); ago != "" {
				header += " " + ago
			}
			fmt.Fprintf(w, "\n%s%s\n", indent, header)
			body := render.ToText(c.Text, max(width-len(indent), 20))
			for _, line := range strings.Split(body, "\n") {
				fmt.Fprintf(w, "%s%s\n", indent, line)
			}
			return true
		})
	}
}
