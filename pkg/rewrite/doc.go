/*
Package rewrite applies literal replacement rules to the files of a single directory.

	+-----------+     +----------+     +---------------------------+
	|  ReadDir  | --> |  filter  | --> | per file:                 |
	| (once)    |     | (globs)  |     |  read -> replace -> write |
	+-----------+     +----------+     +---------------------------+

🎯 Purpose:
- Lists the directory once and selects files whose base name matches a rule glob
- Reads each selected file fully, applies the rules, writes the result back
- Reports each outcome through a status.Reporter

⚡ Guarantees:
- Files are processed sequentially in listing order
- Each file is read once and written once, even when nothing changed
- No entries are created, renamed or removed (ModeAtomic uses a hidden temp
  file that is renamed over the original or removed on failure)
- Directories are never selected, and the listing is not recursive
- The first error stops the run; files already rewritten stay rewritten

🔍 Example:

	rw, err := rewrite.New(rewrite.Options{
		Rules: []text.ReplacementRule{text.DefaultRule()},
	})
	if err != nil {
		return err
	}
	result, err := rw.Run(ctx)
*/
package rewrite
