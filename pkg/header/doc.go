// Package header provides the common envelope for lakescan data structures.
//
// The Header carries Kind, APIVersion, and Metadata (run ID, timestamp,
// tool version) and is embedded inline in the workspace summary so reports
// are self-describing:
//
//	{
//	  "kind": "WorkspaceSummary",
//	  "apiVersion": "lakescan/v1",
//	  "metadata": {
//	    "run-id": "3e1f...",
//	    "timestamp": "2025-08-25T10:30:00Z",
//	    "version": "v1.0.0"
//	  },
//	  ...
//	}
package header
