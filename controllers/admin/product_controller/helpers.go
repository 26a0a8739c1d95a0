package product_controller

import "time"

// uploadTimeout covers Cloudinary round-trips on top of the DB write.
const uploadTimeout = 30 * time.Second
