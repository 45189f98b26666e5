// The connection-notification relay answers every inbound websocket
// message with a fixed acknowledgment. It shares no state with the
// ledger and runs as its own process.
package main

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mvoronin/market_ledger/internal/config"
)

const ackMessage = "Websocket connected successfully"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func relayHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Println("I lost a client")
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(ackMessage)); err != nil {
			log.Printf("write error: %v", err)
			return
		}
	}
}

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	http.HandleFunc("/", relayHandler)
	log.Printf("Server listening on port : %s", configuration.RELAY_ADDR)
	if err := http.ListenAndServe(configuration.RELAY_ADDR, nil); err != nil {
		log.Fatal(err)
	}
}
