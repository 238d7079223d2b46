package main

import (
	"log"

	"Backend/config"
	"Backend/routers"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env, e.g. to point CONFIG_PATH somewhere else
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	db, err := config.SetupMySQLConnection(cfg)
	if err != nil {
		panic("could not connect to the database")
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb, err := config.SetupRedisConnection(cfg)
	if err != nil {
		panic("could not connect to Redis")
	}
	defer rdb.Close()

	router := routers.SetupRouters(db, rdb, cfg)
	router.Run(":" + cfg.Server.Port)
}
