package main

import (
	"fmt"
	"log"

	"github.com/theflywheel/htable"
)

type account struct {
	Balance int64
	Flags   uint32
	_       [4]byte
}

func main() {
	t, err := htable.New[uint64, account]()
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}
	defer htable.Destroy(&t)

	fmt.Println("Table created successfully")

	// Insert some data
	for i := uint64(0); i < 10; i++ {
		if err := t.Put(i, account{Balance: int64(i * 100)}); err != nil {
			log.Fatalf("Failed to insert key %d: %v", i, err)
		}
	}

	fmt.Println("Inserted 10 key-value pairs")

	// Retrieve and display some values
	for i := uint64(0); i < 15; i += 2 {
		var a account
		if t.Get(i, &a) {
			fmt.Printf("Key %d => Balance %d\n", i, a.Balance)
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	// Update a value in place
	if a := t.Find(2); a != nil {
		a.Balance = 999
		a.Flags |= 1
	}

	var a account
	if t.Get(2, &a) {
		fmt.Printf("Updated key 2 => Balance %d, Flags %d\n", a.Balance, a.Flags)
	}

	// Walk everything
	total := int64(0)
	for _, a := range t.All() {
		total += a.Balance
	}
	fmt.Printf("Total balance across %d accounts: %d\n", t.Count(), total)

	fmt.Println("Example completed successfully")
}
