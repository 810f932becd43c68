// Command termclient is a terminal input producer for a running
// cmd/server: it puts the terminal into raw mode, reads keystrokes, and
// forwards each one as a queued input frame over the input-ingestion
// WebSocket. It is a concrete, out-of-core UserInputEventSource
// producer — the engine never imports this package.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/lguibr/asciiring/helpers"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

// inputFrame mirrors transport's wire shape for a queued input event.
type inputFrame struct {
	InputType string `json:"inputType"`
	Params    any    `json:"params"`
}

func setRawMode(fd uintptr) (*unix.Termios, error) {
	saved, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	restore := *saved

	t := *saved
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Oflag |= unix.ONLCR

	if err := unix.IoctlSetTermios(int(fd), unix.TCSETS, &t); err != nil {
		return nil, err
	}
	return &restore, nil
}

// keyToInputType maps a raw keystroke to an input type name; unmapped
// keys still forward as "none" so the server sees every keypress.
func keyToInputType(b byte) string {
	switch b {
	case 'd', 'D':
		return "moveRight"
	case 'a', 'A':
		return "moveLeft"
	case 'w', 'W':
		return "moveUp"
	case 's', 'S':
		return "moveDown"
	default:
		return "none"
	}
}

func main() {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "ws://localhost:8080/subscribe"
	}

	conn, err := websocket.Dial(addr, "", "http://localhost/")
	if err != nil {
		fmt.Println("error connecting to server:", err)
		return
	}
	defer conn.Close()

	go streamServerOutput(conn)

	saved, err := setRawMode(os.Stdin.Fd())
	if err != nil {
		fmt.Println("error setting raw mode:", err)
		return
	}
	restore := func() { unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, saved) }
	defer restore()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		<-interrupts
		restore()
		os.Exit(0)
	}()

	readKeyLoop(conn, restore)
}

func streamServerOutput(conn *websocket.Conn) {
	helpers.ClearScreen()
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			fmt.Println("error reading from server:", err)
			return
		}
		fmt.Print(string(buf[:n]))
	}
}

func readKeyLoop(conn *websocket.Conn, restore func()) {
	key := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(key); err != nil {
			return
		}

		if key[0] == 'q' || key[0] == 'Q' || key[0] == 'c' || key[0] == 'C' {
			restore()
			fmt.Println("quitting")
			os.Exit(0)
		}

		frame := inputFrame{InputType: keyToInputType(key[0])}
		payload, err := json.Marshal(frame)
		if err != nil {
			fmt.Println("error marshalling input frame:", err)
			return
		}
		if _, err := conn.Write(payload); err != nil {
			fmt.Println("error sending to server:", err)
			return
		}
	}
}
