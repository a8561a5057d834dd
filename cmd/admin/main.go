package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"roomchat/backend/internal/config"
	"roomchat/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  create-room <name>   create a room if it does not exist")
	fmt.Println("  rooms                list rooms with message counts")
	fmt.Println("  history <name>       print the room's persisted history")
	os.Exit(1)
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	s := storage.NewService(db)

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "create-room":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin create-room <name>")
			os.Exit(1)
		}
		name := os.Args[2]
		created, err := s.CreateRoom(name)
		if err != nil {
			log.Fatalf("create-room failed: %v", err)
		}
		if created {
			fmt.Printf("Room %q created.\n", name)
		} else {
			fmt.Printf("Room %q already exists.\n", name)
		}

	case "rooms":
		rooms, err := s.ListRooms()
		if err != nil {
			log.Fatalf("failed to list rooms: %v", err)
		}
		counts, err := s.MessageCounts()
		if err != nil {
			log.Fatalf("failed to count messages: %v", err)
		}
		for _, room := range rooms {
			fmt.Printf("%-24s %6d messages  created %s\n",
				room.Name, counts[room.Name], room.CreatedAt.Format(time.RFC3339))
		}

	case "history":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin history <name>")
			os.Exit(1)
		}
		name := os.Args[2]
		messages, err := s.History(name)
		if errors.Is(err, storage.ErrRoomNotFound) {
			fmt.Printf("Room %q does not exist.\n", name)
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("failed to load history: %v", err)
		}
		for _, msg := range messages {
			fmt.Printf("[%s] %s: %s\n",
				msg.CreatedAt.Format(time.RFC3339), msg.Username, msg.Text)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
	}
}
