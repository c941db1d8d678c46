package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/pkg/infrastructure/mysql"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database migrations",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "rollback",
				Usage: "revert the given number of migrations instead of applying",
			},
		},
		Action: func(c *cli.Context) error {
			cnf, err := parseEnv()
			if err != nil {
				return err
			}
			log.SetLevel(cnf.logLevel())

			db, err := mysql.Connect(cnf.database())
			if err != nil {
				return err
			}
			defer db.Close()

			if steps := c.Int("rollback"); steps > 0 {
				log.WithField("steps", steps).Info("reverting migrations")
				return mysql.Rollback(db, steps)
			}
			return mysql.Migrate(db)
		},
	}
}
