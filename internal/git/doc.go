// Package git wraps the git command line for the operations cfhook needs:
// resolving the working-tree root across submodules and linked worktrees,
// reading hook-related configuration, producing staged diffs, and applying
// patches to the index.
//
// Everything shells out to the git binary; no repository format knowledge
// lives here.
package git
