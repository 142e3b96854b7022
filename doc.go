// Package vmd writes styled, word-wrapped text to terminals.
//
// Output is described as a tree of Text nodes: raw strings and groups that
// may carry a Style. A StyleWriter emits the tree with SGR escape sequences,
// reapplying the enclosing styles whenever a group ends. A DisplayWriter
// additionally wraps text at a fixed number of columns, writes a prefix at
// the start of every line and keeps styles intact across line breaks.
//
// Styles for the semantic roles of a document (headings, emphasis, links and
// so on) are read from INI-like configuration files and built-in themes:
//
//	cfg, err := vmd.LoadConfig(vmd.LoadRequest{Theme: "ocean", EnvPrefix: "VMD_"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	w := vmd.NewDisplayWriter(os.Stdout, 60)
//	_ = w.SetPrefix(vmd.Raw("> "))
//	_ = w.WriteText(vmd.Group(
//		vmd.Styled(cfg.Styles.Strong, vmd.Raw("Note:")),
//		vmd.Raw(" long lines wrap under the prefix."),
//	))
//	_ = w.FinishLine()
//
// Markdown rendering on top of these writers lives in internal/markdown and
// is exposed through the vmd command.
package vmd
