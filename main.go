package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yakirhiz/data-structures/avl"
	"github.com/yakirhiz/data-structures/cache"
)

func main() {
	args := os.Args[1:]
	if c := len(args); c != 1 {
		help()
	}

	capacity, err := strconv.Atoi(args[0])
	if err != nil {
		abort(fmt.Sprintf("Invalid capacity %s: %v\n", args[0], err))
	}

	fmt.Printf("LFU cache with capacity %d, ordered index on the side\n", capacity)
	cli := NewCLI(capacity)

	for {
		cmd := prompt(fmt.Sprintf("cache %d/%d>", cli.cache.Len(), cli.cache.Cap()))
		response, cont := cli.Handle(cmd)
		fmt.Println(response)
		if !cont {
			os.Exit(0)
		}
	}
}

func prompt(label string) string {
	var out string

	r := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, label+" ")
		out, _ = r.ReadString('\n')
		if out != "" {
			break
		}
	}

	return strings.TrimSpace(out)
}

type CLI struct {
	cache *cache.LFU[string, string]
	tree  *avl.Tree[string, string]
}

func NewCLI(capacity int) *CLI {
	return &CLI{
		cache: cache.NewLFU[string, string](capacity),
		tree:  avl.New[string, string](),
	}
}

func (cli *CLI) Handle(cmd string) (string, bool) {
	parts := strings.Split(cmd, " ")

	switch parts[0] {
	case "put":
		if len(parts) != 3 {
			return cli.Help(), true
		}

		key, value := parts[1], parts[2]
		cli.cache.Put(key, value)
		if !cli.cache.Contains(key) {
			return fmt.Sprintf("Dropped %s: cache has no capacity", key), true
		}

		return fmt.Sprintf("Stored %s = %s", key, value), true

	case "get":
		if len(parts) != 2 {
			return cli.Help(), true
		}

		key := parts[1]
		value, ok := cli.cache.Get(key)
		if !ok {
			return fmt.Sprintf("Key %s not in cache", key), true
		}

		return fmt.Sprintf("%s = %s", key, value), true

	case "peek":
		if len(parts) != 2 {
			return cli.Help(), true
		}

		key := parts[1]
		value, ok := cli.cache.Peek(key)
		if !ok {
			return fmt.Sprintf("Key %s not in cache", key), true
		}

		return fmt.Sprintf("%s = %s", key, value), true

	case "keys":
		keys := cli.cache.Keys()
		if len(keys) == 0 {
			return "Cache is empty", true
		}

		return fmt.Sprintf("Next eviction first: %s", strings.Join(keys, " ")), true

	case "len":
		return fmt.Sprintf("%d of %d", cli.cache.Len(), cli.cache.Cap()), true

	case "ladder":
		return cli.cache.String(), true

	case "oput":
		if len(parts) != 3 {
			return cli.Help(), true
		}

		key, value := parts[1], parts[2]
		if !cli.tree.Insert(key, value) {
			return fmt.Sprintf("Key %s already in index", key), true
		}

		return fmt.Sprintf("Stored %s = %s", key, value), true

	case "oget":
		if len(parts) != 2 {
			return cli.Help(), true
		}

		key := parts[1]
		value, ok := cli.tree.Get(key)
		if !ok {
			return fmt.Sprintf("Key %s not in index", key), true
		}

		return fmt.Sprintf("%s = %s", key, value), true

	case "odel":
		if len(parts) != 2 {
			return cli.Help(), true
		}

		key := parts[1]
		if !cli.tree.Delete(key) {
			return fmt.Sprintf("Key %s not in index", key), true
		}

		return fmt.Sprintf("Deleted %s", key), true

	case "rank":
		if len(parts) != 2 {
			return cli.Help(), true
		}

		key := parts[1]
		rank, ok := cli.tree.Rank(key)
		if !ok {
			return fmt.Sprintf("Key %s not in index", key), true
		}

		return fmt.Sprintf("%s has rank %d of %d", key, rank, cli.tree.Len()), true

	case "select":
		if len(parts) != 2 {
			return cli.Help(), true
		}

		rank, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Sprintf("Invalid rank %s: %v", parts[1], err), true
		}

		key, ok := cli.tree.Select(rank)
		if !ok {
			return fmt.Sprintf("No key with rank %d, index holds %d", rank, cli.tree.Len()), true
		}

		return fmt.Sprintf("Rank %d = %s", rank, key), true

	case "tree":
		if cli.tree.IsEmpty() {
			return "Index is empty", true
		}

		return cli.tree.String(), true

	case "help":
		return cli.Help(), true

	case "exit":
		return "Bye", false

	default:
		return cli.Help(), true
	}
}

func (cli *CLI) Help() string {
	out := ""
	out += "Cache commands:\n"
	out += "\n"
	out += "\tput <key> <value>\n"
	out += "\tget <key>\n"
	out += "\tpeek <key>\n"
	out += "\tkeys\n"
	out += "\tlen\n"
	out += "\tladder\n"
	out += "\n"
	out += "Ordered index commands:\n"
	out += "\n"
	out += "\toput <key> <value>\n"
	out += "\toget <key>\n"
	out += "\todel <key>\n"
	out += "\trank <key>\n"
	out += "\tselect <rank>\n"
	out += "\ttree\n"
	out += "\n"
	out += "\thelp\n"
	out += "\texit\n"

	return out
}

func help() {
	fmt.Println("Usage: ./data-structures <capacity>")
	os.Exit(2)
}

func abort(msg string) {
	fmt.Printf("Error: %s\n", msg)
	os.Exit(1)
}
