package store

// Table and column names follow the Money Manager Android export format so
// that a copied app database works unmodified. IF NOT EXISTS keeps the DDL
// idempotent on databases the app itself created.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS ZCATEGORY (
    uid       INTEGER PRIMARY KEY,
    NAME      TEXT NOT NULL,
    pUid      INTEGER REFERENCES ZCATEGORY(uid)
);

CREATE TABLE IF NOT EXISTS ASSETS (
    uid       INTEGER PRIMARY KEY,
    NIC_NAME  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS INOUTCOME (
    uid       INTEGER PRIMARY KEY,
    WDATE     TEXT NOT NULL,
    ZMONEY    REAL NOT NULL,
    DO_TYPE   INTEGER NOT NULL,
    ctgUid    INTEGER REFERENCES ZCATEGORY(uid),
    assetUid  INTEGER REFERENCES ASSETS(uid),
    ZCONTENT  TEXT
);

CREATE INDEX IF NOT EXISTS idx_inoutcome_wdate ON INOUTCOME(WDATE);
CREATE INDEX IF NOT EXISTS idx_inoutcome_do_type ON INOUTCOME(DO_TYPE);
CREATE INDEX IF NOT EXISTS idx_inoutcome_ctg ON INOUTCOME(ctgUid);
`
