package main

import "imaging-report-service/cmd"

func main() {
	cmd.Execute()
}
