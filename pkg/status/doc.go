/*
Package status tracks the outcome of each file a rewrite touches.

	+-------------+        +-------------+
	|  Rewriter   | -----> |   Manager   |
	| (per file)  |        | (Reporter)  |
	+-------------+        +------+------+
	                              |
	                  +-----------+-----------+
	                  |                       |
	            +-----+-----+           +-----+-----+
	            | Formatter |           |  zerolog  |
	            | (messages)|           |  (events) |
	            +-----------+           +-----------+

🎯 Purpose:
- Records one FileInfo per processed file (status, replacement count, checksum)
- Reports batch progress
- Renders outcomes for the console (FormatFileRow)

🔄 Flow:
1. StartOperation with the number of matched files
2. TrackFile after each file is written (or fails)
3. UpdateProgress after each file
4. FinishOperation once the batch ends, successfully or not

🔍 Example:

	mgr := status.New(zerolog.Ctx(ctx))
	mgr.StartOperation(ctx, 1)
	mgr.TrackFile(ctx, "vm.hpp", status.FileInfo{
		Path:         "vm.hpp",
		Status:       status.StatusModified,
		Replacements: 3,
	})
	mgr.UpdateProgress(ctx, 1)
	mgr.FinishOperation(ctx)
*/
package status
