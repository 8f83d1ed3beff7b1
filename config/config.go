// config/config.go
package config

import (
	"log"
	"os"
	"strings"
	"time"
)

var (
	Port          string
	MongoURI      string
	DatabaseName  string
	JWTKey        []byte
	JWTExpiration time.Duration

	// EquipmentPrefixes and EquipmentIDs mark floor-plan elements that are
	// shared infrastructure (server racks, boardroom gear). A workstation
	// whose label starts with one of the prefixes, or matches one of the
	// ids exactly, classifies as Equipment regardless of occupancy.
	EquipmentPrefixes []string
	EquipmentIDs      []string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	DatabaseName = os.Getenv("MONGO_DB")
	if DatabaseName == "" {
		DatabaseName = "floortrack"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 24 * time.Hour
	if expireStr != "" {
		if expireStr == "7d" {
			dur = 7 * 24 * time.Hour
		} else {
			var err error
			dur, err = time.ParseDuration(expireStr)
			if err != nil {
				log.Printf("Invalid JWT_EXPIRE: %s, using 24h", expireStr)
				dur = 24 * time.Hour
			}
		}
	}
	JWTExpiration = dur

	EquipmentPrefixes = splitList(os.Getenv("EQUIPMENT_PREFIXES"))
	if len(EquipmentPrefixes) == 0 {
		EquipmentPrefixes = []string{"SRV", "RACK", "BR"}
	}

	EquipmentIDs = splitList(os.Getenv("EQUIPMENT_IDS"))
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
