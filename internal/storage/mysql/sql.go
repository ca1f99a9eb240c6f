package mysql

const createDocumentsSQL = `
CREATE TABLE IF NOT EXISTS documents (
  name       VARCHAR(64) NOT NULL PRIMARY KEY,
  body       LONGTEXT    NOT NULL,
  updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

const upsertDocumentSQL = `
INSERT INTO documents (name, body)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  body       = VALUES(body),
  updated_at = CURRENT_TIMESTAMP
`

const getDocumentSQL = `SELECT body FROM documents WHERE name = ?`
