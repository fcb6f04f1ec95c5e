package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"gitlab.com/akravets/contact-book/internal/model"
	"gitlab.com/akravets/contact-book/internal/randomgen"
)

const serverPort = 8080

// A load generating client. It seeds the service with random contacts and
// measures the average response time of the CRUD endpoints in microseconds.
// Because email and phone are unique, every POST uses a freshly generated
// contact.
//
// Usage example on the command line:
// > go run main.go -seed=1000
func main() {
	seedPtr := flag.Int("seed", 1000, "how many contacts to create")
	flag.Parse()
	loops := *seedPtr

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	fmt.Printf("%10d", loops)

	ids := make([]int64, 0, loops)
	{
		// POST requests
		var duration int64
		for i := 0; i < loops; i++ {
			id, d := sendPostRequest(randomgen.PickContact())
			ids = append(ids, id)
			duration += d
		}
		fmt.Printf("%10d", duration/int64(loops*1000))
	}
	{
		// PUT requests
		f := func(id int64) int64 {
			body := marshalContact(randomgen.PickContact())
			return sendPutGetDeleteRequest(id, http.MethodPut, bytes.NewReader(body))
		}
		callInLoop(ids, f)
	}
	{
		// GET requests
		f := func(id int64) int64 {
			return sendPutGetDeleteRequest(id, http.MethodGet, nil)
		}
		callInLoop(ids, f)
	}
	{
		// DELETE requests
		f := func(id int64) int64 {
			return sendPutGetDeleteRequest(id, http.MethodDelete, nil)
		}
		callInLoop(ids, f)
	}
	fmt.Println()
}

func callInLoop(ids []int64, f func(id int64) int64) {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		duration += f(id)
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
}

func marshalContact(c model.Contact) []byte {
	raw, err := json.Marshal(c)
	if err != nil {
		fmt.Println("could not marshal JSON", err)
		panic(err)
	}
	return raw
}

func sendPostRequest(c model.Contact) (int64, int64) {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts", serverPort)
	resBody, duration := sendRequest(http.MethodPost, requestURL, bytes.NewReader(marshalContact(c)))
	var created model.Contact
	err := json.Unmarshal(resBody, &created)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return created.Id, duration
}

func sendPutGetDeleteRequest(id int64, method string, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts/%d", serverPort, id)
	_, duration := sendRequest(method, requestURL, bodyReader)
	return duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	res.Body.Close()
	after := time.Now().UnixNano()
	return resBody, after - before
}
