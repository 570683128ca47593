package migrations

import "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/migration"

func createCoreTables() migration.Migrate {
	return migration.Migrate{
		UP: func(d migration.Datasource) error {
			return d.Exec(
				`CREATE TABLE TEAM (
					Team_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					Team_Name TEXT NOT NULL,
					Nationality TEXT
				)`,
				`CREATE TABLE DRIVER (
					Driver_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					First_Name TEXT NOT NULL,
					Last_Name TEXT NOT NULL,
					DOB DATE,
					Team_ID INTEGER REFERENCES TEAM (Team_ID)
				)`,
				`CREATE TABLE CIRCUIT (
					Circuit_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					Circuit_Name TEXT NOT NULL,
					Location TEXT
				)`,
				`CREATE TABLE RACE (
					Race_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					Race_Name TEXT NOT NULL,
					Venue TEXT,
					Year INTEGER NOT NULL,
					Circuit_ID INTEGER REFERENCES CIRCUIT (Circuit_ID)
				)`,
				`CREATE TABLE STATUS (
					Status_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					Status_description TEXT NOT NULL
				)`,
				`CREATE TABLE RESULT (
					Result_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					Race_ID INTEGER NOT NULL REFERENCES RACE (Race_ID),
					Driver_ID INTEGER NOT NULL REFERENCES DRIVER (Driver_ID),
					Team_ID INTEGER NOT NULL REFERENCES TEAM (Team_ID),
					Status_ID INTEGER NOT NULL REFERENCES STATUS (Status_ID),
					Position INTEGER,
					Grid INTEGER,
					Points REAL NOT NULL DEFAULT 0
				)`,
			)
		},
	}
}
