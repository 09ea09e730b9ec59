package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	lib "github.com/encryptedtouhid/SmartZone"
	"github.com/encryptedtouhid/SmartZone/config"
	"github.com/encryptedtouhid/SmartZone/snapshot"
	"github.com/encryptedtouhid/SmartZone/transport"
)

func main() {
	mode := flag.String("mode", "watch", "snapshot|watch")
	interval := flag.Duration("interval", 2*time.Second, "watch mode print interval")
	top := flag.Int("top", 0, "top zones to print (0 = config default)")
	provision := flag.Bool("provision", false, "initialize zones if the service has none")
	startSim := flag.Bool("start-sim", false, "start the upstream simulation before watching")
	stopSim := flag.Bool("stop-sim", false, "stop the upstream simulation on exit")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if *top > 0 {
		config.Config.Projection.TopZones = *top
	}

	client, err := lib.NewClient(config.Config, lib.Options{
		OnEvent: func(e transport.Event) {
			log.Printf("connection %s", e)
		},
	})
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	ctx := context.Background()

	if *provision {
		zones, err := client.Loader().Zones(ctx)
		if err != nil {
			log.Fatalf("zones: %v", err)
		}
		if len(zones) == 0 {
			if err := client.Loader().InitializeZones(ctx, snapshot.ProvisionParams{
				CenterLat: 1.3521,
				CenterLon: 103.8198,
				RadiusKM:  5.0,
			}); err != nil {
				log.Fatalf("initialize zones: %v", err)
			}
			log.Printf("zones provisioned")
		}
	}
	if *startSim {
		if err := client.Loader().StartSimulation(ctx); err != nil {
			log.Fatalf("start simulation: %v", err)
		}
		log.Printf("simulation started")
	}

	if err := client.LoadSnapshot(ctx); err != nil {
		// stream can still recover the state; start with empty stores
		log.Printf("snapshot load failed, starting empty: %v", err)
	}

	switch *mode {
	case "snapshot":
		printBoard(client)
	case "watch":
		client.Connect()
		defer client.Disconnect()

		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	loop:
		for {
			select {
			case <-ticker.C:
				printBoard(client)
			case <-sigs:
				log.Printf("shutdown signal received")
				break loop
			}
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	if *stopSim {
		if err := client.Loader().StopSimulation(ctx); err != nil {
			log.Printf("stop simulation: %v", err)
		}
	}
}

func printBoard(c *lib.Client) {
	zones := c.TopZones()
	requests := c.ActiveRequests()
	fmt.Printf("-- %s | drivers %d (%d available) | zones %d | active requests %d\n",
		c.ConnectionState(), len(c.Drivers()), len(c.AvailableDrivers()), len(c.Zones()), len(requests))
	for i, z := range zones {
		surge := ""
		if z.IsSurge {
			surge = " SURGE"
		}
		fmt.Printf("   %2d. zone %s demand=%d requests=%d drivers=%d%s\n",
			i+1, z.ZoneID, z.DemandLevel, z.CurrentRequests, z.DriversCount, surge)
	}
	for _, r := range requests {
		fmt.Printf("   req %s [%s] driver=%s created=%s\n", r.ID, r.Status, r.DriverID, r.CreatedAt)
	}
}
