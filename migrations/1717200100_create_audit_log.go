package migrations

import "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/migration"

// createAuditLog adds AUDIT_LOG and the triggers that fill it on every driver and result change.
func createAuditLog() migration.Migrate {
	return migration.Migrate{
		UP: func(d migration.Datasource) error {
			return d.Exec(
				`CREATE TABLE AUDIT_LOG (
					Log_ID INTEGER PRIMARY KEY AUTOINCREMENT,
					Table_Name TEXT NOT NULL,
					Action TEXT NOT NULL,
					Record_ID INTEGER,
					Old_Value TEXT,
					New_Value TEXT,
					Changed_By TEXT NOT NULL DEFAULT 'f1dash',
					Changed_At TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TRIGGER DRIVER_INSERT_AUDIT AFTER INSERT ON DRIVER
				BEGIN
					INSERT INTO AUDIT_LOG (Table_Name, Action, Record_ID, New_Value)
					VALUES ('DRIVER', 'INSERT', NEW.Driver_ID, NEW.First_Name || ' ' || NEW.Last_Name);
				END`,
				`CREATE TRIGGER DRIVER_UPDATE_AUDIT AFTER UPDATE ON DRIVER
				BEGIN
					INSERT INTO AUDIT_LOG (Table_Name, Action, Record_ID, Old_Value, New_Value)
					VALUES ('DRIVER', 'UPDATE', NEW.Driver_ID,
						OLD.First_Name || ' ' || OLD.Last_Name || ' team ' || COALESCE(OLD.Team_ID, '-'),
						NEW.First_Name || ' ' || NEW.Last_Name || ' team ' || COALESCE(NEW.Team_ID, '-'));
				END`,
				`CREATE TRIGGER DRIVER_DELETE_AUDIT AFTER DELETE ON DRIVER
				BEGIN
					INSERT INTO AUDIT_LOG (Table_Name, Action, Record_ID, Old_Value)
					VALUES ('DRIVER', 'DELETE', OLD.Driver_ID, OLD.First_Name || ' ' || OLD.Last_Name);
				END`,
				`CREATE TRIGGER RESULT_INSERT_AUDIT AFTER INSERT ON RESULT
				BEGIN
					INSERT INTO AUDIT_LOG (Table_Name, Action, Record_ID, New_Value)
					VALUES ('RESULT', 'INSERT', NEW.Result_ID,
						'race ' || NEW.Race_ID || ' driver ' || NEW.Driver_ID || ' position ' || COALESCE(NEW.Position, 'DNF'));
				END`,
			)
		},
	}
}
