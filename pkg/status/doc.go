/*
Package status tracks the files staged during a run.

	+-------------+        +-------------+
	|  installer  | -----> |   Tracker   |
	|  (copies)   | Track  |  (records)  |
	+-------------+        +------+------+
	                              |
	                        +-----+-----+
	                        | Formatter |
	                        | (summary) |
	                        +-----------+

🎯 Purpose:
- Records every copy in manifest order
- Knows whether a copy created a file or replaced one
- Formats the end-of-run summary

The tracker only observes. It never decides whether a file is copied, so a
second run over an unchanged manifest copies every file again and reports
them as overwritten.
*/
package status
