package main

import (
	"blog-server/setup"
)

func main() {
	setup.MustLoadEnv()
	setup.MustInitDb()
	setup.StartServer(routes())
}
