// Session store inspector. Lists, shows and prunes locally saved reading
// sessions without starting the app.
//
//	go run ./cmd/sessions list
//	go run ./cmd/sessions show <id>
//	go run ./cmd/sessions delete <id>
package main

import (
	"fmt"
	"os"

	"github.com/FishWY/lunwen-workspace/internal/config"
	"github.com/FishWY/lunwen-workspace/pkg/sessionstore"

	"github.com/fatih/color"
)

func main() {
	path := config.Load().Keys.SessionStorePath

	store, err := sessionstore.Open(path)
	if err != nil {
		color.Red("Failed to open session store %s: %v", path, err)
		os.Exit(1)
	}
	defer store.Close()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listSessions(store)
	case "show":
		requireId()
		showSession(store, os.Args[2])
	case "delete":
		requireId()
		deleteSession(store, os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: sessions <list|show <id>|delete <id>>")
}

func requireId() {
	if len(os.Args) < 3 {
		color.Red("Missing session id")
		os.Exit(1)
	}
}

func listSessions(store *sessionstore.Store) {
	metas, err := store.Metadata()
	if err != nil {
		color.Red("Failed to list sessions: %v", err)
		os.Exit(1)
	}
	if len(metas) == 0 {
		color.Yellow("No sessions stored.")
		return
	}

	color.Cyan("%-38s %-30s %s", "ID", "TITLE", "LAST MODIFIED")
	for _, m := range metas {
		fmt.Printf("%-38s %-30s %s\n", m.ID, m.Title, m.LastModified.Format("2006-01-02 15:04:05"))
	}
}

func showSession(store *sessionstore.Store, id string) {
	sess, err := store.Load(id)
	if err != nil {
		color.Red("Failed to load session: %v", err)
		os.Exit(1)
	}
	if sess == nil {
		color.Yellow("Session %s not found.", id)
		return
	}

	color.Cyan("Session %s", sess.ID)
	fmt.Printf("  Title:        %s\n", sess.Title)
	fmt.Printf("  Workspace:    %s\n", sess.WorkspaceID)
	fmt.Printf("  PDF size:     %d bytes\n", len(sess.PDF))
	fmt.Printf("  Nodes:        %d\n", len(sess.Nodes))
	fmt.Printf("  Edges:        %d\n", len(sess.Edges))
	fmt.Printf("  Chat entries: %d\n", len(sess.ChatHistory))
	fmt.Printf("  Modified:     %s\n", sess.LastModified.Format("2006-01-02 15:04:05"))
}

func deleteSession(store *sessionstore.Store, id string) {
	if err := store.Delete(id); err != nil {
		color.Red("Failed to delete session: %v", err)
		os.Exit(1)
	}
	color.Green("Deleted session %s.", id)
}
