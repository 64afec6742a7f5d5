//go:build !tinygo && !baremetal

// Command bondctl is an interactive admin CLI over a receiver's bond
// store (§4.3, §6): list, add, and remove bonded transmitter records
// without needing physical access to the radio pairing flow. Grounded on
// mjackit's promptui-driven menu loop from the example pack.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/bond/filestore"
	"github.com/openpedal/pedallink/txtable"
	"github.com/openpedal/pedallink/wire"
)

const (
	actionList   = "List bonded transmitters"
	actionAdd    = "Add a bond"
	actionRemove = "Remove a bond"
	actionQuit   = "Quit"
)

func main() {
	path := flag.String("bond_store", "pedallink-bonds.gob", "path to the bond store file")
	flag.Parse()

	store := filestore.New(*path)

	for {
		sel := promptui.Select{
			Label: fmt.Sprintf("bondctl (%s)", *path),
			Items: []string{actionList, actionAdd, actionRemove, actionQuit},
		}
		_, choice, err := sel.Run()
		if err != nil {
			fmt.Fprintln(os.Stderr, "bondctl:", err)
			return
		}

		switch choice {
		case actionList:
			listBonds(store)
		case actionAdd:
			addBond(store)
		case actionRemove:
			removeBond(store)
		case actionQuit:
			return
		}
	}
}

func listBonds(store bond.Store) {
	records, count, err := store.LoadRecords()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		return
	}
	any := false
	for i := 0; i < count && i < len(records); i++ {
		r := records[i]
		if r.MAC.IsZero() {
			continue
		}
		any = true
		fmt.Printf("slot %d: %s mode=%s key=%c\n", i, r.MAC, r.PedalMode, txtable.AssignedKey(i))
	}
	if !any {
		fmt.Println("no bonded transmitters")
	}
}

func addBond(store bond.Store) {
	macPrompt := promptui.Prompt{Label: "Transmitter MAC (aa:bb:cc:dd:ee:ff)"}
	macStr, err := macPrompt.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "add:", err)
		return
	}
	mac, err := parseMAC(macStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "add:", err)
		return
	}

	modeSel := promptui.Select{Label: "Pedal mode", Items: []string{"single", "dual"}}
	_, modeStr, err := modeSel.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "add:", err)
		return
	}
	mode := wire.Single
	if modeStr == "dual" {
		mode = wire.Dual
	}

	records, count, err := store.LoadRecords()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		return
	}
	var table txtable.Table
	for i := 0; i < count && i < txtable.MaxSlots; i++ {
		table.Slots[i] = txtable.Record{MAC: records[i].MAC, PedalMode: records[i].PedalMode}
	}
	idx := table.Insert(mac, mode, 0)
	if idx < 0 {
		fmt.Fprintln(os.Stderr, "add: no free slot")
		return
	}

	if err := saveTable(store, &table); err != nil {
		fmt.Fprintln(os.Stderr, "save:", err)
		return
	}
	fmt.Printf("bonded %s into slot %d\n", mac, idx)
}

func removeBond(store bond.Store) {
	records, count, err := store.LoadRecords()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		return
	}
	var table txtable.Table
	var items []string
	var indices []int
	for i := 0; i < count && i < txtable.MaxSlots; i++ {
		table.Slots[i] = txtable.Record{MAC: records[i].MAC, PedalMode: records[i].PedalMode}
		if !records[i].MAC.IsZero() {
			items = append(items, fmt.Sprintf("slot %d: %s", i, records[i].MAC))
			indices = append(indices, i)
		}
	}
	if len(items) == 0 {
		fmt.Println("no bonded transmitters to remove")
		return
	}

	sel := promptui.Select{Label: "Remove which bond?", Items: items}
	pos, _, err := sel.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "remove:", err)
		return
	}

	table.Remove(indices[pos])
	if err := saveTable(store, &table); err != nil {
		fmt.Fprintln(os.Stderr, "save:", err)
		return
	}
	fmt.Println("removed")
}

func saveTable(store bond.Store, table *txtable.Table) error {
	var records [bond.MaxRecords]bond.Record
	count := 0
	for i, r := range table.Slots {
		records[i] = bond.Record{MAC: r.MAC, PedalMode: r.PedalMode}
		if !r.MAC.IsZero() {
			count = i + 1
		}
	}
	return store.SaveRecords(records, count)
}

func parseMAC(s string) (wire.MAC, error) {
	var mac wire.MAC
	n, err := fmt.Sscanf(s, "%02x:%02x:%02x:%02x:%02x:%02x",
		&mac[0], &mac[1], &mac[2], &mac[3], &mac[4], &mac[5])
	if err != nil || n != 6 {
		return mac, fmt.Errorf("malformed MAC %q", s)
	}
	return mac, nil
}
