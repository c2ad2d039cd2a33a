package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"workingna/api/websocket"

	"github.com/gorilla/websocket"
)

const usage = "Commands: 'l' list courses, 't <id>' toggle course, 'c' calculate fees, " +
	"'n <name>', 'p <phone>', 'e <email>' update details, 'r' reset session"

func main() {
	addr := flag.String("addr", "127.0.0.1:9090", "server address")
	flag.Parse()

	// 构建 WebSocket URL
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial error: %v", err)
	}
	defer c.Close()

	// 创建心跳定时器
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	requests := make(chan protocol.Message)

	// 所有写操作都在这个协程中完成
	go func() {
		for {
			var msg protocol.Message
			select {
			case <-ticker.C:
				msg = protocol.Message{Type: protocol.HeartbeatMessage, Data: "ping"}
			case msg = <-requests:
			case <-done:
				return
			}
			if err := c.WriteJSON(msg); err != nil {
				log.Printf("write error: %v", err)
				return
			}
		}
	}()

	// 启动消息接收协程
	go func() {
		defer close(done)
		for {
			_, frame, err := c.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				return
			}
			for _, raw := range bytes.Split(frame, []byte{'\n'}) {
				handleMessage(raw)
			}
		}
	}()

	// 启动键盘输入处理协程
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		log.Println(usage)

		for scanner.Scan() {
			msg, ok := parseCommand(scanner.Text())
			if !ok {
				log.Println(usage)
				continue
			}
			select {
			case requests <- msg:
			case <-done:
				return
			}
		}
	}()

	// 主循环
	for {
		select {
		case <-done:
			log.Println("Connection closed")
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection...")
			err := c.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			if err != nil {
				log.Println("write close:", err)
				return
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}

// parseCommand 将一行键盘输入转换成协议消息
func parseCommand(line string) (protocol.Message, bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "l":
		return protocol.Message{Type: protocol.CatalogRequestMessage}, true
	case "t":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return protocol.Message{}, false
		}
		return protocol.Message{Type: protocol.CourseToggleMessage, Data: map[string]int{"courseId": id}}, true
	case "c":
		return protocol.Message{Type: protocol.CalculateFeesMessage}, true
	case "n":
		return protocol.Message{Type: protocol.RegistrantUpdateMessage, Data: map[string]string{"name": arg}}, true
	case "p":
		return protocol.Message{Type: protocol.RegistrantUpdateMessage, Data: map[string]string{"phone": arg}}, true
	case "e":
		return protocol.Message{Type: protocol.RegistrantUpdateMessage, Data: map[string]string{"email": arg}}, true
	case "r":
		return protocol.Message{Type: protocol.SessionResetMessage}, true
	}
	return protocol.Message{}, false
}

func handleMessage(raw []byte) {
	var envelope struct {
		Type string          `json:"type"`
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		log.Println("json unmarshal error:", err)
		return
	}

	switch envelope.Type {
	case protocol.HeartbeatResponseMessage:
		// 心跳响应不打印日志
	case protocol.SessionStartMessage:
		var start protocol.SessionStart
		if err := json.Unmarshal(envelope.Data, &start); err == nil {
			log.Printf("session %s started", start.SessionID)
			printCatalog(start.Catalog)
		}
	case protocol.CatalogMessage:
		var catalog struct {
			Courses []protocol.CatalogEntry `json:"courses"`
		}
		if err := json.Unmarshal(envelope.Data, &catalog); err == nil {
			printCatalog(catalog.Courses)
		}
	case protocol.CourseToggledMessage:
		var toggled protocol.CourseToggled
		if err := json.Unmarshal(envelope.Data, &toggled); err == nil {
			log.Printf("course %d selected=%t, selection %v", toggled.CourseID, toggled.Selected, toggled.SelectedIDs)
		}
	case protocol.FeeQuoteMessage:
		var quote protocol.FeeQuote
		if err := json.Unmarshal(envelope.Data, &quote); err == nil {
			log.Printf("%d course(s): base R%s, discount %s, VAT R%s", quote.Count, quote.Base, quote.DiscountRate, quote.VAT)
			log.Println(quote.Display)
		}
	case protocol.ErrorMessage:
		log.Printf("error %d: %s", envelope.Code, envelope.Data)
	default:
		log.Printf("recv: %s", raw)
	}
}

func printCatalog(entries []protocol.CatalogEntry) {
	for _, entry := range entries {
		mark := " "
		if entry.Selected {
			mark = "x"
		}
		fmt.Printf("  [%s] %d. %s\n", mark, entry.ID, entry.Label)
	}
}
