package migrations

import "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/migration"

func seedReferenceData() migration.Migrate {
	return migration.Migrate{
		UP: func(d migration.Datasource) error {
			return d.Exec(
				`INSERT INTO STATUS (Status_description) VALUES
					('Finished'), ('Accident'), ('Collision'), ('Engine'), ('Gearbox'),
					('Hydraulics'), ('Brakes'), ('Retired'), ('Disqualified')`,
				`INSERT INTO TEAM (Team_Name, Nationality) VALUES
					('Red Bull Racing', 'Austrian'), ('Ferrari', 'Italian'), ('McLaren', 'British'),
					('Mercedes', 'German'), ('Aston Martin', 'British'), ('Alpine', 'French'),
					('Williams', 'British'), ('RB', 'Italian'), ('Kick Sauber', 'Swiss'), ('Haas', 'American')`,
				`INSERT INTO CIRCUIT (Circuit_Name, Location) VALUES
					('Bahrain International Circuit', 'Sakhir'), ('Jeddah Corniche Circuit', 'Jeddah'),
					('Albert Park Circuit', 'Melbourne'), ('Suzuka Circuit', 'Suzuka'),
					('Circuit de Monaco', 'Monte Carlo'), ('Silverstone Circuit', 'Silverstone'),
					('Autodromo Nazionale Monza', 'Monza'), ('Yas Marina Circuit', 'Abu Dhabi')`,
			)
		},
	}
}
