// Package logging provides console diagnostics, per-run JSONL event logs and
// tail output for taskbot.
//
// Run logs live under <log_dir>/<project-slug>/<timestamp>-<pid>.jsonl where
// the slug is the project directory name plus a short hash of its path, so
// two checkouts with the same name do not share logs.
package logging
