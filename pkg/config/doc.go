/*
Package config manages configuration parsing and validation for reinclude.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Holds the built-in defaults (Default) used when no file is given
- Loads an optional config file, picking the parser by extension
- Validates rules the same way the rewriter does

🔄 Flow:
1. Read the file
2. Parse format-specific syntax, rejecting unknown fields
3. Fill the default rule when none are declared
4. Resolve a relative directory against the config file's directory
5. Validate the rules

🔍 Example (HCL):

	directory = "include"
	atomic    = true

	rule {
	  from = default.from
	  to   = default.to
	  glob = "*.{hpp,hh}"
	}

🔍 Example (YAML):

	directory: include
	rules:
	  - from: '.h"'
	    to: '.hpp"'
	    glob: '*.hpp'
*/
package config
