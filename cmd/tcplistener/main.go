package main

import (
	"fmt"
	"net"

	"github.com/Brownie44l1/pageserver/internal/request"
	"github.com/Brownie44l1/pageserver/internal/response"
)

const bufferSize = 1024

func main() {
	listener, err := net.Listen("tcp", ":42069")
	if err != nil {
		fmt.Println("Listen error:", err)
		return
	}
	defer listener.Close()
	fmt.Println("Listening on port 42069...")

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, bufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		fmt.Println("Read error:", err)
		return
	}

	req, err := request.Parse(buf[:n])
	if err != nil {
		fmt.Println("Parse error:", err)
		conn.Write([]byte(response.BadRequest().String()))
		return
	}

	fmt.Println("Request Line")
	fmt.Printf("Method: %s\n", req.Method)
	fmt.Printf("URI: %s\n", req.URI)
	fmt.Printf("Version: %g\n", req.HTTPVersion)

	fmt.Println("Headers")
	for name, value := range req.Headers.All() {
		fmt.Printf("%s: %s\n", name, value)
	}
	fmt.Println("Body")
	fmt.Printf("%s\n", req.Body)

	conn.Write([]byte(response.OK("Hello from your HTTP server!\n").String()))
}
