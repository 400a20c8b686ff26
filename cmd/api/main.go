package main

// @title TourneyFlights APIs
// @version 1.0
// @description Flight quote aggregation for table-tennis tournament weekends.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "github.com/dhyanpatel/TourneyFlights/docs"
	protocol "github.com/dhyanpatel/TourneyFlights/protocal"

	_ "github.com/arsmn/fiber-swagger/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}
