package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/mosaicnetworks/hashlog/store"
)

// openStore opens a Badger-backed store rooted at config.DBPath, or an
// in-memory store when DBPath is empty, matching src/config.Config's
// Store/DatabaseDir switch between BadgerStore and an in-memory one.
func openStore() (store.BlockStore, func() error, error) {
	if config.DBPath == "" {
		return store.NewInmemStore(), func() error { return nil }, nil
	}

	s, err := store.NewBadgerStore(config.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

// headPointerPath is the file used to remember a chain's current log
// digest between hashlogd invocations, the same "small JSON/text file
// next to the database" pattern src/peers.JSONPeers uses for peer
// persistence.
func headPointerPath(id string) string {
	dir := config.DBPath
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "hashlogd."+sanitize(id)+".head")
}

func sanitize(id string) string {
	return strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(id)
}

func readHeadPointer(id string) (string, bool, error) {
	raw, err := ioutil.ReadFile(headPointerPath(id))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(string(raw)), true, nil
}

func writeHeadPointer(id string, multihash string) error {
	return ioutil.WriteFile(headPointerPath(id), []byte(multihash), 0644)
}
