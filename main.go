package main

import "github.com/apigenie/apigenie/cmd/apigenie"

func main() {
	apigenie.Execute()
}
