// Package git runs git operations against the dotfiles repository.
//
// Every operation receives the repository directory explicitly; nothing in
// this package changes the process working directory. Cloning and working
// tree inspection go through go-git, while commands that users expect to
// behave exactly like git (passthrough, commit, pull, push, stash) execute
// the git binary with its working directory set to the repository.
package git
